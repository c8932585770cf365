package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"greeting-studio/internal/config"
)

// Recipient binds one name to every path derived from it. The mapping
// is built once at job start so no stage ever invents a filename.
type Recipient struct {
	Name         string
	GreetingPath string // synthesized speech, staging
	ComposedPath string // mixed audio track, staging
	OutputPath   string // rendered video, staging
	OutputName   string // archive entry name
}

// unsafeChars are rejected in recipient names because the name doubles
// as the output filename stem.
const unsafeChars = `/\:*?"<>|`

// ValidateName reports why a recipient name cannot be used as a
// filename stem, or nil if it can.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("recipient name is empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("recipient name %q is a reserved path", name)
	}
	if strings.ContainsAny(name, unsafeChars) {
		return fmt.Errorf("recipient name %q contains filesystem-unsafe characters", name)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("recipient name %q contains control characters", name)
		}
	}
	return nil
}

// BuildRecipients maps names to staging and output paths under the
// run's staging directory. Names must be unique and filesystem-safe;
// the first offending name fails the whole set before any work starts.
func BuildRecipients(names []string, stagingDir, outputFormat string) ([]Recipient, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("recipient list is empty")
	}

	seen := make(map[string]bool, len(names))
	recipients := make([]Recipient, 0, len(names))
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate recipient name %q", name)
		}
		seen[name] = true

		outputName := name + "." + outputFormat
		recipients = append(recipients, Recipient{
			Name:         name,
			GreetingPath: filepath.Join(stagingDir, config.StagingGreetingsDir, name+".mp3"),
			ComposedPath: filepath.Join(stagingDir, config.StagingComposedDir, name+".wav"),
			OutputPath:   filepath.Join(stagingDir, config.StagingRenderedDir, outputName),
			OutputName:   outputName,
		})
	}
	return recipients, nil
}
