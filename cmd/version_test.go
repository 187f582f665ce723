package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommandOutput(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, app+" version") {
		t.Fatalf("expected app name and version in output, got %q", got)
	}
	if !strings.Contains(got, version) {
		t.Fatalf("expected version %q in output, got %q", version, got)
	}
}
