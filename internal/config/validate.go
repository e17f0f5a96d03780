package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ExportDir) == "" {
		return errors.New("paths.export_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.SimilarityThreshold <= 0 || c.Matching.SimilarityThreshold > 1 {
		return errors.New("matching.similarity_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.ExtraPath == "" {
		return nil
	}
	info, err := os.Stat(c.Catalog.ExtraPath)
	if err != nil {
		return fmt.Errorf("catalog.extra_path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("catalog.extra_path %q is a directory, expected a TOML file", c.Catalog.ExtraPath)
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.MinConfidence < 0 || c.LLM.MinConfidence > 1 {
		return errors.New("llm.min_confidence must be between 0 and 1")
	}
	if err := ensurePositiveMap(map[string]int{
		"llm.timeout_seconds":     c.LLM.TimeoutSeconds,
		"llm.requests_per_minute": c.LLM.RequestsPerMinute,
	}); err != nil {
		return err
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
