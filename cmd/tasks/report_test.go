package main

import (
	"testing"

	"github.com/amonks/tasks/internal/config"
)

func TestFormatFlag(t *testing.T) {
	var f formatFlag
	if err := f.Set(" Markdown "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.String() != "markdown" {
		t.Fatalf("expected markdown, got %q", f.String())
	}
	if err := f.Set("html"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if f.String() != "markdown" {
		t.Fatalf("expected failed Set to keep markdown, got %q", f.String())
	}
}

func TestReportWidthPrefersConfig(t *testing.T) {
	cfg := &config.Config{Report: config.Report{Width: 100}}
	if got := reportWidth(cfg); got != 100 {
		t.Fatalf("expected configured width 100, got %d", got)
	}
}
