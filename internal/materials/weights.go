package materials

import (
	"errors"
	"fmt"
)

// Dimension names one axis of the priority vector.
type Dimension string

const (
	DimensionQuality        Dimension = "quality"
	DimensionCost           Dimension = "cost"
	DimensionSustainability Dimension = "sustainability"
	DimensionDurability     Dimension = "durability"
)

// Dimensions lists the priority axes in canonical order.
func Dimensions() []Dimension {
	return []Dimension{DimensionQuality, DimensionCost, DimensionSustainability, DimensionDurability}
}

// ErrUnknownDimension is returned by Reweight for an unrecognized axis.
var ErrUnknownDimension = errors.New("unknown priority dimension")

// Weights is the four-dimensional priority vector. Each weight is 0-100
// and the sum is 100 after any well-formed mutation; see Reweight for the
// clamping shortfall case.
type Weights struct {
	Quality        float64 `json:"quality"`
	Cost           float64 `json:"cost"`
	Sustainability float64 `json:"sustainability"`
	Durability     float64 `json:"durability"`
}

// DefaultWeights is the balanced starting vector.
func DefaultWeights() Weights {
	return Weights{Quality: 25, Cost: 25, Sustainability: 25, Durability: 25}
}

// Get returns the weight for a dimension.
func (w Weights) Get(dim Dimension) (float64, error) {
	switch dim {
	case DimensionQuality:
		return w.Quality, nil
	case DimensionCost:
		return w.Cost, nil
	case DimensionSustainability:
		return w.Sustainability, nil
	case DimensionDurability:
		return w.Durability, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
	}
}

func (w *Weights) set(dim Dimension, value float64) {
	switch dim {
	case DimensionQuality:
		w.Quality = value
	case DimensionCost:
		w.Cost = value
	case DimensionSustainability:
		w.Sustainability = value
	case DimensionDurability:
		w.Durability = value
	}
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.Quality + w.Cost + w.Sustainability + w.Durability
}

// Reweight sets one dimension to newValue (clamped to [0,100]) and
// redistributes the opposite delta across the other dimensions in
// proportion to their current share, clamping each at zero.
//
// When clamping bites, the redistributed amount falls short and the sum
// lands below 100; that shortfall is preserved rather than silently
// renormalized. Callers that need an exact 100 apply Normalize afterwards.
func Reweight(w Weights, dim Dimension, newValue float64) (Weights, error) {
	current, err := w.Get(dim)
	if err != nil {
		return w, err
	}

	if newValue < 0 {
		newValue = 0
	}
	if newValue > 100 {
		newValue = 100
	}

	delta := newValue - current

	othersSum := 0.0
	for _, other := range Dimensions() {
		if other == dim {
			continue
		}
		value, _ := w.Get(other)
		othersSum += value
	}

	out := w
	for _, other := range Dimensions() {
		if other == dim {
			continue
		}
		value, _ := w.Get(other)
		share := 0.0
		if othersSum > 0 {
			share = value / othersSum
		}
		adjusted := value - delta*share
		if adjusted < 0 {
			adjusted = 0
		}
		out.set(other, adjusted)
	}
	out.set(dim, newValue)
	return out, nil
}

// Normalize rescales the vector so the sum is exactly 100. A zero vector
// is returned unchanged.
func (w Weights) Normalize() Weights {
	sum := w.Sum()
	if sum <= 0 {
		return w
	}
	scale := 100 / sum
	return Weights{
		Quality:        w.Quality * scale,
		Cost:           w.Cost * scale,
		Sustainability: w.Sustainability * scale,
		Durability:     w.Durability * scale,
	}
}
