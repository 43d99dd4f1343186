package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"prepress/internal/analysis"
	"prepress/internal/costing"
	"prepress/internal/materials"
)

var moneyPrinter = message.NewPrinter(language.English)

func money(value float64) string {
	return moneyPrinter.Sprintf("$%.2f", value)
}

func renderReport(out io.Writer, report analysis.Report) {
	fmt.Fprintf(out, "Artifact %s (%s)\n", report.ArtifactID, report.Filename)

	md := report.Metadata
	metaRows := [][]string{
		{"Format", string(md.Format)},
		{"Dimensions", fmt.Sprintf("%.0f × %.0f", md.Width, md.Height)},
		{"DPI", fmt.Sprintf("%d (%s)", md.DPI, md.DPISource)},
		{"Color space", strings.ToUpper(string(md.ColorSpace))},
		{"Pages", fmt.Sprintf("%d", md.PageCount)},
		{"Transparency", yesNo(md.HasTransparency)},
		{"Thin lines", yesNo(md.HasThinLines)},
		{"Unembedded fonts", fmt.Sprintf("%d", len(md.UnembeddedFonts))},
	}
	fmt.Fprintln(out, renderTable([]string{"Property", "Value"}, metaRows, nil))

	fmt.Fprintf(out, "\nPrint readiness: %d/100   Risk: %d/100 (%s)\n",
		report.PrintReadinessScore, report.RiskScore, report.RiskLevel)

	if len(report.Issues) == 0 {
		fmt.Fprintln(out, "No production issues detected")
		return
	}

	issueRows := make([][]string, 0, len(report.Issues))
	for _, issue := range report.Issues {
		issueRows = append(issueRows, []string{
			string(issue.Category),
			string(issue.Severity),
			issue.Message,
			issue.Recommendation,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Category", "Severity", "Issue", "Recommendation"}, issueRows, nil))
}

func renderRecommendations(out io.Writer, recommendations []materials.Recommendation) {
	if len(recommendations) == 0 {
		fmt.Fprintln(out, "No materials match this product type")
		return
	}
	rows := make([][]string, 0, len(recommendations))
	for i, rec := range recommendations {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			rec.Candidate.Name,
			rec.Candidate.ID,
			fmt.Sprintf("%.3f", rec.Score),
			fmt.Sprintf("q %.2f / c %.2f / s %.2f / d %.2f",
				rec.Details.Quality, rec.Details.Cost, rec.Details.Sustainability, rec.Details.Durability),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Material", "ID", "Score", "Contributions"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft}))
}

func renderEstimate(out io.Writer, estimate costing.Estimate) {
	rows := [][]string{
		{"Setup", money(estimate.BaseCosts.Setup)},
		{"Setup complexity", money(estimate.ComplexityCosts.SetupComplexity)},
		{"Production / unit", money(estimate.BaseCosts.Production)},
		{"Production complexity / unit", money(estimate.ComplexityCosts.ProductionComplexity)},
		{"Complexity factor", fmt.Sprintf("%.2f", estimate.ComplexityCosts.ComplexityFactor)},
		{"Quantity", fmt.Sprintf("%d", estimate.QuantityCosts.Quantity)},
		{"Discount factor", fmt.Sprintf("%.2f", estimate.QuantityCosts.DiscountFactor)},
		{"Discount amount", money(estimate.QuantityCosts.DiscountAmount)},
		{"Material surcharge", money(estimate.MaterialCosts.TotalCost)},
		{"Total", money(estimate.TotalCost)},
		{"Per unit", money(estimate.UnitCost)},
	}
	fmt.Fprintln(out, renderTable([]string{"Cost component", "Amount"}, rows,
		[]columnAlignment{alignLeft, alignRight}))

	for _, factor := range estimate.CostFactors {
		fmt.Fprintf(out, "  • %s\n", factor)
	}
	for _, saving := range estimate.SavingsOpportunities {
		fmt.Fprintf(out, "  → %s\n", saving)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
