package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"prepress/internal/analysis"
	"prepress/internal/artifact"
	"prepress/internal/costing"
	"prepress/internal/materials"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut      bool
		productType  string
		materialType string
		quantity     int
		weightsFlag  string
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a design file for print readiness",
		Long: fmt.Sprintf(`Analyze extracts technical metadata from a design file, runs the
print-production rule set, ranks catalog materials for the product type,
and estimates production cost for the requested quantity.

Supported formats: %s.`, supportedFormats()),
		Args: cobra.ExactArgs(1),
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

			weights, err := ctx.parseWeightsFlag(weightsFlag)
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

			art, err := readArtifact(args[0])
			if err != nil {
				return err
			}

			report := pipeline.AnalyzeOne(cmd.Context(), art)
			recommendations := pipeline.Recommend(report.Metadata, catalog, productType, weights)
			estimate, err := pipeline.EstimateCost(report, productType, materialType, quantity)
			if err != nil {
				return fmt.Errorf("estimate cost: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd, struct {
					Report          analysis.Report            `json:"report"`
					Recommendations []materials.Recommendation `json:"recommendations"`
					Estimate        costing.Estimate           `json:"estimate"`
				}{report, recommendations, estimate})
			}

			out := cmd.OutOrStdout()
			renderReport(out, report)
			fmt.Fprintf(out, "\nMaterial recommendations for %q:\n", productType)
			renderRecommendations(out, recommendations)
			fmt.Fprintf(out, "\nCost estimate (%d × %s on %s):\n", quantity, productType, materialType)
			renderEstimate(out, estimate)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full result as JSON")
	cmd.Flags().StringVar(&productType, "product", "", "Product type for ranking and costing")
	cmd.Flags().StringVar(&materialType, "material", "", "Material type for costing")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Production quantity")
	cmd.Flags().StringVar(&weightsFlag, "weights", "", "Priority weights as quality,cost,sustainability,durability (sum 100)")
	return cmd
}

func supportedFormats() string {
	var names []string
	for _, f := range artifact.AllFormats() {
		if f == artifact.FormatUnknown {
			continue
		}
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// readArtifact loads a file into an analysis.Artifact, deriving the MIME
// type from the extension the way the upload layer would.
func readArtifact(path string) (analysis.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return analysis.Artifact{}, fmt.Errorf("read artifact: %w", err)
	}
	return analysis.Artifact{
		Filename: filepath.Base(path),
		MIMEType: mime.TypeByExtension(filepath.Ext(path)),
		Data:     data,
	}, nil
}
