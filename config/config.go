// Package config loads figscan run settings from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/figscan/chroma"
	"github.com/tsawler/figscan/report"
)

// Config holds the settings of one scan.
type Config struct {
	PDFPath         string  `yaml:"pdf_path"`
	OutputFile      string  `yaml:"output_file"`
	PageOffset      int     `yaml:"page_offset"`
	ColorThreshold  int     `yaml:"color_threshold"`
	SampleThreshold float64 `yaml:"sample_threshold"`
	DetectColor     bool    `yaml:"detect_color"`
	Format          string  `yaml:"format"` // text | html | json
	ProgressEvery   int     `yaml:"progress_every"`
	OCR             bool    `yaml:"ocr"`
	OCRLanguage     string  `yaml:"ocr_language"`
	LedgerDB        string  `yaml:"ledger_db"` // empty disables the run ledger
	LogLevel        string  `yaml:"log_level"` // debug | info | warn | error
}

// Default returns the settings used when a file or flag leaves them unset.
func Default() Config {
	t := chroma.DefaultThresholds()
	return Config{
		OutputFile:      "figure_pages.txt",
		PageOffset:      33,
		ColorThreshold:  t.ColorThreshold,
		SampleThreshold: t.SampleThreshold,
		DetectColor:     true,
		Format:          "text",
		ProgressEvery:   50,
		OCRLanguage:     "eng",
		LogLevel:        "info",
	}
}

// LoadFile reads a YAML file over the defaults. Keys absent from the file
// keep their default value, so an explicit page_offset of 0 is honoured.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that required fields are present and values are sane.
func (c Config) Validate() error {
	if c.PDFPath == "" {
		return fmt.Errorf("pdf_path is required")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file is required")
	}
	if err := c.Thresholds().Validate(); err != nil {
		return err
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("progress_every must be >= 0")
	}
	if _, err := c.ReportFormat(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Thresholds returns the pixel analysis thresholds.
func (c Config) Thresholds() chroma.Thresholds {
	return chroma.Thresholds{ColorThreshold: c.ColorThreshold, SampleThreshold: c.SampleThreshold}
}

// ReportFormat parses Format.
func (c Config) ReportFormat() (report.Format, error) {
	return report.ParseFormat(c.Format)
}

// Level parses LogLevel. An empty level is Info.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
