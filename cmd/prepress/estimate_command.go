package main

import (
	"github.com/spf13/cobra"

	"prepress/internal/artifact"
	"prepress/internal/costing"
)

func newEstimateCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut      bool
		productType  string
		materialType string
		quantity     int
		complexity   float64
		printability float64
		cmyk         bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate production cost without analyzing a file",
		Long: `Estimate prices a production run from flags alone, using neutral
complexity and printability scores unless overridden. Useful for quoting
before artwork exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if productType == "" {
				productType = cfg.Costing.DefaultProductType
			}
			if materialType == "" {
				materialType = cfg.Costing.DefaultMaterialType
			}
			if quantity <= 0 {
				quantity = cfg.Costing.DefaultQuantity
			}

			colorSpace := artifact.ColorRGB
			if cmyk {
				colorSpace = artifact.ColorCMYK
			}

			estimate, err := costing.Compute(costing.Input{
				ProductType:      productType,
				MaterialType:     materialType,
				Quantity:         quantity,
				ColorSpace:       colorSpace,
				DesignComplexity: complexity,
				Printability:     printability,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, estimate)
			}
			renderEstimate(cmd.OutOrStdout(), estimate)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the estimate as JSON")
	cmd.Flags().StringVar(&productType, "product", "", "Product type")
	cmd.Flags().StringVar(&materialType, "material", "", "Material type")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Production quantity")
	cmd.Flags().Float64Var(&complexity, "complexity", 50, "Design complexity score, 0-100")
	cmd.Flags().Float64Var(&printability, "printability", 80, "Printability score, 0-100")
	cmd.Flags().BoolVar(&cmyk, "cmyk", false, "Assume CMYK artwork (no color conversion penalty)")
	return cmd
}
