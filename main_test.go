package main

import (
	"strings"
	"testing"
)

func TestRunBatch_MissingFlags(t *testing.T) {
	err := runBatch("", "", "", "", -1, "")
	if err == nil {
		t.Fatal("runBatch() should reject missing required flags")
	}
	if !strings.Contains(err.Error(), "-video") {
		t.Errorf("error = %v, should name the missing flags", err)
	}
}

func TestRunBatch_MissingNamesFile(t *testing.T) {
	err := runBatch("/in/base.mp4", "/in/music.wav", "/nonexistent/names.csv", "", -1, "")
	if err == nil {
		t.Error("runBatch() should fail for a missing recipient list")
	}
}
