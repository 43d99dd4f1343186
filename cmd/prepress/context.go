package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"prepress/internal/analysis"
	"prepress/internal/config"
	"prepress/internal/logging"
	"prepress/internal/materials"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			logger = logging.NewNop()
		}
		if cfg.Paths.LogDir != "" {
			logPath := filepath.Join(cfg.Paths.LogDir, "prepress.log")
			if fileHandler, err := logging.NewFileHandler(logPath, cfg.Logging.Level); err == nil {
				logger = logging.Tee(logger, fileHandler)
			}
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) newPipeline() (*analysis.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return analysis.New(analysis.Options{
		Workers:     cfg.Analysis.Workers,
		MaxPDFPages: cfg.Analysis.MaxPDFPages,
		Logger:      c.ensureLogger(),
	}), nil
}

// loadCatalog returns the configured catalog, or the embedded default when
// no catalog path is set.
func (c *commandContext) loadCatalog() (materials.Catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return materials.Catalog{}, err
	}
	if cfg.Paths.CatalogPath == "" {
		return materials.DefaultCatalog(), nil
	}
	return materials.LoadCatalog(cfg.Paths.CatalogPath)
}

// defaultWeights converts the config weights section to a ranking vector.
func (c *commandContext) defaultWeights() (materials.Weights, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return materials.Weights{}, err
	}
	return materials.Weights{
		Quality:        cfg.Weights.Quality,
		Cost:           cfg.Weights.Cost,
		Sustainability: cfg.Weights.Sustainability,
		Durability:     cfg.Weights.Durability,
	}, nil
}

// parseWeightsFlag parses "quality,cost,sustainability,durability" values
// that must sum to 100. An empty flag falls back to config defaults.
func (c *commandContext) parseWeightsFlag(flag string) (materials.Weights, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		return c.defaultWeights()
	}
	parts := strings.Split(flag, ",")
	if len(parts) != 4 {
		return materials.Weights{}, fmt.Errorf("weights: expected 4 comma-separated values, got %d", len(parts))
	}
	values := make([]float64, 4)
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return materials.Weights{}, fmt.Errorf("weights: parse %q: %w", part, err)
		}
		if value < 0 || value > 100 {
			return materials.Weights{}, fmt.Errorf("weights: %g is outside [0, 100]", value)
		}
		values[i] = value
	}
	weights := materials.Weights{
		Quality:        values[0],
		Cost:           values[1],
		Sustainability: values[2],
		Durability:     values[3],
	}
	if sum := weights.Sum(); sum < 99.999 || sum > 100.001 {
		return materials.Weights{}, fmt.Errorf("weights: must sum to 100, got %g", sum)
	}
	return weights, nil
}
