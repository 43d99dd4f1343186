package costing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"prepress/internal/artifact"
)

// ErrInvalidQuantity marks an estimate request with a non-positive quantity.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Input carries everything an estimate needs. DesignComplexity and
// Printability are artifact-level 0-100 scores supplied by the analysis
// pipeline, not recomputed here.
type Input struct {
	ProductType      string
	MaterialType     string
	Quantity         int
	ColorSpace       artifact.ColorSpace
	DesignComplexity float64
	Printability     float64
}

// BaseCosts are the product-type lookup values.
type BaseCosts struct {
	Setup      float64 `json:"setup"`
	Production float64 `json:"production"`
}

// ComplexityCosts break out the complexity multiplier's effect.
type ComplexityCosts struct {
	SetupComplexity      float64 `json:"setup_complexity"`
	ProductionComplexity float64 `json:"production_complexity"`
	ComplexityFactor     float64 `json:"complexity_factor"`
}

// QuantityCosts break out the discount tier applied.
type QuantityCosts struct {
	Quantity       int     `json:"quantity"`
	DiscountFactor float64 `json:"discount_factor"`
	DiscountAmount float64 `json:"discount_amount"`
}

// MaterialCosts break out the per-unit material surcharge.
type MaterialCosts struct {
	Type        string  `json:"type"`
	CostPerUnit float64 `json:"cost_per_unit"`
	TotalCost   float64 `json:"total_cost"`
}

// Estimate is the full cost breakdown for one production run.
type Estimate struct {
	BaseCosts            BaseCosts       `json:"base_costs"`
	ComplexityCosts      ComplexityCosts `json:"complexity_costs"`
	QuantityCosts        QuantityCosts   `json:"quantity_costs"`
	MaterialCosts        MaterialCosts   `json:"material_costs"`
	TotalCost            float64         `json:"total_cost"`
	UnitCost             float64         `json:"unit_cost"`
	CostFactors          []string        `json:"cost_factors"`
	SavingsOpportunities []string        `json:"savings_opportunities"`
}

// baseCostTable is keyed by normalized product type; unknown types use
// defaultBaseCosts.
var baseCostTable = map[string]BaseCosts{
	"tshirt":       {Setup: 25, Production: 5},
	"hoodie":       {Setup: 30, Production: 9},
	"tote":         {Setup: 20, Production: 4},
	"mug":          {Setup: 15, Production: 3},
	"poster":       {Setup: 10, Production: 2},
	"businesscard": {Setup: 15, Production: 0.5},
}

var defaultBaseCosts = BaseCosts{Setup: 20, Production: 5}

// materialSurcharges are per-unit additions by material type; unknown
// types carry no surcharge.
var materialSurcharges = map[string]float64{
	"standard": 0,
	"premium":  1,
	"organic":  2,
	"recycled": 1.5,
}

type discountTier struct {
	minQuantity int
	factor      float64
}

// discountTiers by inclusive lower quantity bound, highest first.
var discountTiers = []discountTier{
	{500, 0.70},
	{250, 0.80},
	{100, 0.90},
	{50, 0.95},
}

// Compute produces the full cost breakdown. It fails only for a
// non-positive quantity; unknown product or material types fall back to
// defaults rather than erroring.
func Compute(in Input) (Estimate, error) {
	if in.Quantity <= 0 {
		return Estimate{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, in.Quantity)
	}

	base := baseCostsFor(in.ProductType)

	factor := complexityFactor(in.DesignComplexity, in.Printability, in.ColorSpace)
	complexity := ComplexityCosts{
		SetupComplexity:      round2(5 * (factor - 0.9)),
		ProductionComplexity: round2(0.5 * (factor - 0.9)),
		ComplexityFactor:     round2(factor),
	}

	discount := DiscountFactor(in.Quantity)
	quantity := QuantityCosts{
		Quantity:       in.Quantity,
		DiscountFactor: discount,
		DiscountAmount: round2((1 - discount) * base.Production * float64(in.Quantity)),
	}

	materialType := normalizeType(in.MaterialType)
	perUnit := materialSurcharges[materialType]
	material := MaterialCosts{
		Type:        materialType,
		CostPerUnit: perUnit,
		TotalCost:   round2(perUnit * float64(in.Quantity)),
	}

	total := (base.Setup + complexity.SetupComplexity) +
		(base.Production+complexity.ProductionComplexity)*float64(in.Quantity)*discount +
		material.TotalCost
	total = round2(total)

	return Estimate{
		BaseCosts:            base,
		ComplexityCosts:      complexity,
		QuantityCosts:        quantity,
		MaterialCosts:        material,
		TotalCost:            total,
		UnitCost:             round2(total / float64(in.Quantity)),
		CostFactors:          costFactors(in, factor),
		SavingsOpportunities: savingsOpportunities(in, materialType),
	}, nil
}

func baseCostsFor(productType string) BaseCosts {
	if costs, ok := baseCostTable[normalizeType(productType)]; ok {
		return costs
	}
	return defaultBaseCosts
}

// complexityFactor scales production effort by design complexity, expected
// printability, and a small penalty for RGB artwork that needs conversion.
func complexityFactor(designComplexity, printability float64, colorSpace artifact.ColorSpace) float64 {
	colorFactor := 1.05
	if colorSpace == artifact.ColorCMYK {
		colorFactor = 1.0
	}
	return (1 + designComplexity/200) * (1 + (100-printability)/200) * colorFactor
}

// DiscountFactor returns the quantity-tier multiplier applied to per-unit
// production cost.
func DiscountFactor(quantity int) float64 {
	for _, tier := range discountTiers {
		if quantity >= tier.minQuantity {
			return tier.factor
		}
	}
	return 1.0
}

// costFactors derives the advisory factor list. Informational only; no
// numeric effect on the total.
func costFactors(in Input, factor float64) []string {
	var factors []string
	if in.DesignComplexity > 70 {
		factors = append(factors, "Design complexity: high impact on setup and production time")
	} else if in.DesignComplexity > 40 {
		factors = append(factors, "Design complexity: moderate impact on production time")
	}
	if in.Printability < 60 {
		factors = append(factors, "Low printability score: expect extra prepress work")
	}
	if in.ColorSpace != artifact.ColorCMYK {
		factors = append(factors, "Color conversion: artwork is not CMYK and requires conversion")
	}
	if factor > 1.2 {
		factors = append(factors, fmt.Sprintf("Combined complexity multiplier is %.2f", factor))
	}
	return factors
}

// savingsOpportunities derives the advisory savings list from fixed
// threshold rules.
func savingsOpportunities(in Input, materialType string) []string {
	var savings []string
	if next, ok := nextDiscountTier(in.Quantity); ok {
		savings = append(savings, fmt.Sprintf(
			"Increase the order to %d units to reach the %.0f%% discount tier",
			next.minQuantity, (1-next.factor)*100))
	}
	if surcharge := materialSurcharges[materialType]; surcharge > 0 {
		savings = append(savings, fmt.Sprintf(
			"Switching from %s to standard material saves %.2f per unit", materialType, surcharge))
	}
	if in.DesignComplexity > 70 {
		savings = append(savings, "Simplifying the design reduces the complexity multiplier")
	}
	return savings
}

func nextDiscountTier(quantity int) (discountTier, bool) {
	for i := len(discountTiers) - 1; i >= 0; i-- {
		if quantity < discountTiers[i].minQuantity {
			return discountTiers[i], true
		}
	}
	return discountTier{}, false
}

func normalizeType(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, "-", "")
	value = strings.ReplaceAll(value, "_", "")
	value = strings.ReplaceAll(value, " ", "")
	return value
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
