package services

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Archiver bundles rendered videos into the run's single zip artifact.
type Archiver struct{}

func NewArchiver() *Archiver {
	return &Archiver{}
}

// Entry names one file to add to the archive.
type Entry struct {
	Path string // file on disk
	Name string // name inside the archive
}

// Package writes a zip at outputPath containing every entry. Entries
// are stored under their given names with no directory structure.
func (a *Archiver) Package(entries []Entry, outputPath string) error {
	if len(entries) == 0 {
		return fmt.Errorf("no files to archive")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, entry := range entries {
		if err := addEntry(w, entry); err != nil {
			w.Close()
			os.Remove(outputPath) // Never leave a truncated archive behind
			return err
		}
	}

	if err := w.Close(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

func addEntry(w *zip.Writer, entry Entry) error {
	src, err := os.Open(entry.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s for archiving: %w", entry.Path, err)
	}
	defer src.Close()

	dst, err := w.Create(entry.Name)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", entry.Name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write %s to archive: %w", entry.Name, err)
	}
	return nil
}
