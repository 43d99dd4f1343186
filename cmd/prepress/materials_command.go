package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"prepress/internal/artifact"
	"prepress/internal/materials"
)

func newMaterialsCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut        bool
		productType    string
		weightsFlag    string
		prioritizeFlag []string
	)

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Rank catalog materials by priority weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			weights, err := ctx.parseWeightsFlag(weightsFlag)
			if err != nil {
				return err
			}
			weights, err = applyPrioritize(weights, prioritizeFlag)
			if err != nil {
				return err
			}
			catalog, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			pipeline, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			// Ranking without a specific artifact uses a neutral snapshot.
			recommendations := pipeline.Recommend(artifact.Metadata{}, catalog, productType, weights)

			if jsonOut {
				return writeJSON(cmd, recommendations)
			}

			out := cmd.OutOrStdout()
			if productType != "" {
				fmt.Fprintf(out, "Materials for %q (quality %g / cost %g / sustainability %g / durability %g):\n",
					productType, weights.Quality, weights.Cost, weights.Sustainability, weights.Durability)
			}
			renderRecommendations(out, recommendations)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the ranking as JSON")
	cmd.Flags().StringVar(&productType, "product", "", "Filter candidates by product type")
	cmd.Flags().StringVar(&weightsFlag, "weights", "", "Priority weights as quality,cost,sustainability,durability (sum 100)")
	cmd.Flags().StringArrayVar(&prioritizeFlag, "prioritize", nil, "Raise one dimension as name=value, redistributing the rest (repeatable)")
	return cmd
}

// applyPrioritize applies each name=value adjustment in order and
// renormalizes once at the end so the vector sums to 100 again.
func applyPrioritize(weights materials.Weights, adjustments []string) (materials.Weights, error) {
	if len(adjustments) == 0 {
		return weights, nil
	}
	for _, adjustment := range adjustments {
		name, raw, ok := strings.Cut(adjustment, "=")
		if !ok {
			return weights, fmt.Errorf("invalid --prioritize value %q: expected name=value", adjustment)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return weights, fmt.Errorf("invalid --prioritize value %q: %w", adjustment, err)
		}
		weights, err = materials.Reweight(weights, materials.Dimension(strings.TrimSpace(strings.ToLower(name))), value)
		if err != nil {
			return weights, err
		}
	}
	return weights.Normalize(), nil
}
