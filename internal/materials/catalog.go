package materials

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed default_catalog.toml
var defaultCatalog []byte

// CostTier buckets a material's relative per-unit cost.
type CostTier string

const (
	CostLow       CostTier = "low"
	CostLowMedium CostTier = "low-medium"
	CostMedium    CostTier = "medium"
	CostHigh      CostTier = "high"
)

// Durability grades expected wear resistance.
type Durability string

const (
	DurabilityLow        Durability = "low"
	DurabilityMedium     Durability = "medium"
	DurabilityMediumHigh Durability = "medium-high"
	DurabilityHigh       Durability = "high"
	DurabilityVeryHigh   Durability = "very-high"
)

// Properties describe a material's production characteristics.
type Properties struct {
	Weight         string     `toml:"weight" json:"weight"`
	Finish         string     `toml:"finish" json:"finish"`
	Sustainability int        `toml:"sustainability" json:"sustainability"`
	CostTier       CostTier   `toml:"cost_tier" json:"cost_tier"`
	PrintQuality   int        `toml:"print_quality" json:"print_quality"`
	ColorRetention string     `toml:"color_retention" json:"color_retention"`
	Durability     Durability `toml:"durability" json:"durability"`
}

// Candidate is one catalog entry. Read-only to this subsystem.
type Candidate struct {
	ID          string     `toml:"id" json:"id"`
	Name        string     `toml:"name" json:"name"`
	ProductType string     `toml:"product_type" json:"product_type"`
	Properties  Properties `toml:"properties" json:"properties"`
	BestFor     []string   `toml:"best_for" json:"best_for"`
}

// Catalog is the full set of rankable materials.
type Catalog struct {
	Materials []Candidate `toml:"material"`
}

// DefaultCatalog returns the embedded material catalog.
func DefaultCatalog() Catalog {
	catalog, err := parseCatalog(defaultCatalog)
	if err != nil {
		// The embedded catalog is covered by tests; a parse failure here is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return catalog
}

// LoadCatalog reads a TOML catalog from disk.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	catalog, err := parseCatalog(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}

func parseCatalog(data []byte) (Catalog, error) {
	var catalog Catalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	for i := range catalog.Materials {
		candidate := &catalog.Materials[i]
		candidate.ID = strings.TrimSpace(candidate.ID)
		candidate.ProductType = strings.ToLower(strings.TrimSpace(candidate.ProductType))
		if candidate.ID == "" {
			return Catalog{}, fmt.Errorf("material %d: id is required", i)
		}
		if _, ok := costTierScores[candidate.Properties.CostTier]; !ok {
			return Catalog{}, fmt.Errorf("material %s: unknown cost tier %q", candidate.ID, candidate.Properties.CostTier)
		}
		if _, ok := durabilityScores[candidate.Properties.Durability]; !ok {
			return Catalog{}, fmt.Errorf("material %s: unknown durability %q", candidate.ID, candidate.Properties.Durability)
		}
	}
	return catalog, nil
}

// ForProductType returns the candidates matching the normalized product
// type. Candidates with no product type match everything. An empty result
// is a valid outcome, not an error.
func (c Catalog) ForProductType(productType string) []Candidate {
	productType = strings.ToLower(strings.TrimSpace(productType))
	if productType == "" {
		return append([]Candidate(nil), c.Materials...)
	}
	var out []Candidate
	for _, candidate := range c.Materials {
		if candidate.ProductType == "" || candidate.ProductType == productType {
			out = append(out, candidate)
		}
	}
	return out
}
