package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateWeights(); err != nil {
		return err
	}
	if err := c.validateCosting(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.Workers <= 0 {
		return errors.New("analysis.workers must be positive")
	}
	if c.Analysis.MaxPDFPages <= 0 {
		return errors.New("analysis.max_pdf_pages must be positive")
	}
	return nil
}

func (c *Config) validateWeights() error {
	for name, value := range map[string]float64{
		"weights.quality":        c.Weights.Quality,
		"weights.cost":           c.Weights.Cost,
		"weights.sustainability": c.Weights.Sustainability,
		"weights.durability":     c.Weights.Durability,
	} {
		if value < 0 || value > 100 {
			return fmt.Errorf("%s must be between 0 and 100", name)
		}
	}
	sum := c.Weights.Quality + c.Weights.Cost + c.Weights.Sustainability + c.Weights.Durability
	if math.Abs(sum-100) > 1e-9 {
		return fmt.Errorf("priority weights must sum to 100, got %g", sum)
	}
	return nil
}

func (c *Config) validateCosting() error {
	if c.Costing.DefaultQuantity <= 0 {
		return errors.New("costing.default_quantity must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
