package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAnalysis()
	c.normalizeCosting()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.CatalogPath = strings.TrimSpace(c.Paths.CatalogPath)
	if c.Paths.CatalogPath != "" {
		if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
			return fmt.Errorf("paths.catalog_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeAnalysis() {
	if c.Analysis.Workers <= 0 {
		c.Analysis.Workers = defaultAnalysisWorkers
	}
	if c.Analysis.MaxPDFPages <= 0 {
		c.Analysis.MaxPDFPages = defaultMaxPDFPages
	}
}

func (c *Config) normalizeCosting() {
	c.Costing.DefaultProductType = strings.ToLower(strings.TrimSpace(c.Costing.DefaultProductType))
	if c.Costing.DefaultProductType == "" {
		c.Costing.DefaultProductType = defaultProductType
	}
	c.Costing.DefaultMaterialType = strings.ToLower(strings.TrimSpace(c.Costing.DefaultMaterialType))
	if c.Costing.DefaultMaterialType == "" {
		c.Costing.DefaultMaterialType = defaultMaterialType
	}
	if c.Costing.DefaultQuantity <= 0 {
		c.Costing.DefaultQuantity = defaultQuantity
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
