package models

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	valid := []string{"Alice", "Bob Smith", "O'Brien", "Ana-María", "name_1"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", ".", "..", "a/b", `a\b`, "a:b", "a?b", "a*b", "a\x00b", "a\nb"}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
		}
	}
}

func TestBuildRecipients(t *testing.T) {
	recipients, err := BuildRecipients([]string{"Alice", "Bob"}, "/tmp/run", "mp4")
	if err != nil {
		t.Fatalf("BuildRecipients() error = %v", err)
	}
	if len(recipients) != 2 {
		t.Fatalf("got %d recipients, want 2", len(recipients))
	}

	r := recipients[0]
	if r.Name != "Alice" {
		t.Errorf("Name = %q, want 'Alice'", r.Name)
	}
	if r.OutputName != "Alice.mp4" {
		t.Errorf("OutputName = %q, want 'Alice.mp4'", r.OutputName)
	}
	if !strings.HasSuffix(r.GreetingPath, "Alice.mp3") {
		t.Errorf("GreetingPath = %q, should end in Alice.mp3", r.GreetingPath)
	}
	if !strings.Contains(r.GreetingPath, "/tmp/run") {
		t.Errorf("GreetingPath = %q, should be under staging dir", r.GreetingPath)
	}
	if !strings.HasSuffix(r.ComposedPath, "Alice.wav") {
		t.Errorf("ComposedPath = %q, should end in Alice.wav", r.ComposedPath)
	}
	if !strings.HasSuffix(r.OutputPath, "Alice.mp4") {
		t.Errorf("OutputPath = %q, should end in Alice.mp4", r.OutputPath)
	}
}

func TestBuildRecipients_Empty(t *testing.T) {
	if _, err := BuildRecipients(nil, "/tmp/run", "mp4"); err == nil {
		t.Error("BuildRecipients() should return error for empty list")
	}
}

func TestBuildRecipients_Duplicate(t *testing.T) {
	_, err := BuildRecipients([]string{"Alice", "Alice"}, "/tmp/run", "mp4")
	if err == nil {
		t.Error("BuildRecipients() should return error for duplicate names")
	}
}

func TestBuildRecipients_UnsafeName(t *testing.T) {
	_, err := BuildRecipients([]string{"Alice", "../etc"}, "/tmp/run", "mp4")
	if err == nil {
		t.Error("BuildRecipients() should return error for unsafe name")
	}
}

func TestBuildRecipients_AVIExtension(t *testing.T) {
	recipients, err := BuildRecipients([]string{"Alice"}, "/tmp/run", "avi")
	if err != nil {
		t.Fatalf("BuildRecipients() error = %v", err)
	}
	if recipients[0].OutputName != "Alice.avi" {
		t.Errorf("OutputName = %q, want 'Alice.avi'", recipients[0].OutputName)
	}
}
