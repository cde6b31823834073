package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/figscan/report"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "figscan.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.OutputFile != "figure_pages.txt" || cfg.PageOffset != 33 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ColorThreshold != 3 || cfg.SampleThreshold != 0.001 {
		t.Errorf("unexpected thresholds: %+v", cfg.Thresholds())
	}
	if !cfg.DetectColor || cfg.ProgressEvery != 50 || cfg.OCRLanguage != "eng" {
		t.Errorf("unexpected expansion defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("default config without pdf_path should not validate")
	}
	cfg.PDFPath = "book.pdf"
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config with pdf_path: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
pdf_path: book.pdf
page_offset: 0
color_threshold: 10
format: html
log_level: debug
ledger_db: runs.db
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.PageOffset != 0 {
		t.Errorf("PageOffset = %d, want explicit 0", cfg.PageOffset)
	}
	if cfg.ColorThreshold != 10 || cfg.SampleThreshold != 0.001 {
		t.Errorf("thresholds = %+v", cfg.Thresholds())
	}
	if cfg.OutputFile != "figure_pages.txt" {
		t.Errorf("OutputFile = %q, want default", cfg.OutputFile)
	}
	if f, _ := cfg.ReportFormat(); f != report.FormatHTML {
		t.Errorf("format = %v", f)
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("level = %v", l)
	}
	if cfg.LedgerDB != "runs.db" {
		t.Errorf("LedgerDB = %q", cfg.LedgerDB)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadFile(writeFile(t, "pdf_path: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty output", func(c *Config) { c.OutputFile = "" }},
		{"negative color threshold", func(c *Config) { c.ColorThreshold = -1 }},
		{"zero sample threshold", func(c *Config) { c.SampleThreshold = 0 }},
		{"negative progress", func(c *Config) { c.ProgressEvery = -5 }},
		{"bad format", func(c *Config) { c.Format = "pdf" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.PDFPath = "book.pdf"
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
