package detect

import (
	"fmt"
	"math"

	"prepress/internal/artifact"
)

const (
	// minPrintDPI is the resolution below which a Resolution issue fires.
	minPrintDPI = 300
	// criticalDPI is the resolution below which that issue is High severity.
	criticalDPI = 150
	// largeFileBytes flags uploads that risk processing delays.
	largeFileBytes = 100 << 20

	resolutionPenalty   = 10
	colorPenalty        = 20
	fontPenalty         = 10
	transparencyPenalty = 15
)

// Result holds the outcome of one detection run.
type Result struct {
	// Issues in fixed rule order: resolution, color, layout, font,
	// transparency, file size.
	Issues []Issue
	// PrintReadinessScore starts at 100 and is reduced by issue penalties,
	// clamped to [0, 100].
	PrintReadinessScore int
	// RiskScore is the severity-weighted average of detected issues, 0-100.
	RiskScore int
	// RiskLevel buckets RiskScore.
	RiskLevel RiskLevel
}

// Detect runs every rule against the metadata. Same metadata in, identical
// result out, every call.
func Detect(md artifact.Metadata) Result {
	score := 100
	var issues []Issue

	if issue, penalty := checkResolution(md); issue != nil {
		issues = append(issues, *issue)
		score -= penalty
	}
	if issue := checkColor(md); issue != nil {
		issues = append(issues, *issue)
		score -= colorPenalty
	}
	issues = append(issues, checkLayout(md)...)
	if issue, penalty := checkFonts(md); issue != nil {
		issues = append(issues, *issue)
		score -= penalty
	}
	if issue := checkTransparency(md); issue != nil {
		issues = append(issues, *issue)
		score -= transparencyPenalty
	}
	if issue := checkFileSize(md); issue != nil {
		issues = append(issues, *issue)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	risk := RiskScore(issues)
	return Result{
		Issues:              issues,
		PrintReadinessScore: score,
		RiskScore:           risk,
		RiskLevel:           LevelForScore(risk),
	}
}

// checkResolution fires when the effective DPI is below print quality.
// Degraded metadata with no DPI at all is skipped, not penalized.
func checkResolution(md artifact.Metadata) (*Issue, int) {
	if md.DPI == 0 || md.DPI >= minPrintDPI {
		return nil, 0
	}
	severity := SeverityMedium
	if md.DPI < criticalDPI {
		severity = SeverityHigh
	}
	return &Issue{
		Category: CategoryResolution,
		Severity: severity,
		Message:  fmt.Sprintf("Effective resolution is %d DPI, below the %d DPI print standard", md.DPI, minPrintDPI),
		Recommendation: fmt.Sprintf(
			"Rebuild the artwork at %d DPI or higher at final print size", minPrintDPI),
	}, resolutionPenalty
}

func checkColor(md artifact.Metadata) *Issue {
	if md.ColorSpace != artifact.ColorRGB {
		return nil
	}
	return &Issue{
		Category:       CategoryColor,
		Severity:       SeverityHigh,
		Message:        "RGB color space detected; print production requires CMYK",
		Recommendation: "Convert the document to CMYK before submitting for print",
	}
}

// checkLayout emits informational issues for trim-edge proximity and
// non-standard dimensions. Neither reduces the readiness score.
func checkLayout(md artifact.Metadata) []Issue {
	var issues []Issue
	if md.ContentNearTrim {
		issues = append(issues, Issue{
			Category:       CategoryLayout,
			Severity:       SeverityMedium,
			Message:        "Content sits inside the trim safety margin",
			Recommendation: "Keep text and critical elements at least 0.125\" from the trim edge",
		})
	}
	if md.Width > 0 && md.Height > 0 {
		widthPt, heightPt := md.PointDimensions()
		if _, ok := artifact.StandardSize(widthPt, heightPt); !ok {
			issues = append(issues, Issue{
				Category:       CategoryLayout,
				Severity:       SeverityLow,
				Message:        fmt.Sprintf("Dimensions %.0f×%.0f pt do not match a standard print size", widthPt, heightPt),
				Recommendation: "Confirm the trim size with your print provider or resize to a standard format",
			})
		}
	}
	return issues
}

func checkFonts(md artifact.Metadata) (*Issue, int) {
	count := len(md.UnembeddedFonts)
	if count == 0 {
		return nil, 0
	}
	message := fmt.Sprintf("%d font(s) are not embedded", count)
	return &Issue{
		Category:       CategoryFont,
		Severity:       SeverityHigh,
		Message:        message,
		Recommendation: "Embed all fonts or convert text to outlines before export",
	}, fontPenalty * count
}

func checkTransparency(md artifact.Metadata) *Issue {
	if !md.HasTransparency {
		return nil
	}
	return &Issue{
		Category:       CategoryTransparency,
		Severity:       SeverityMedium,
		Message:        "Live transparency effects detected",
		Recommendation: "Flatten transparency to avoid unpredictable output on older RIPs",
	}
}

func checkFileSize(md artifact.Metadata) *Issue {
	if md.ByteSize <= largeFileBytes {
		return nil
	}
	return &Issue{
		Category:       CategoryFileSize,
		Severity:       SeverityMedium,
		Message:        "File exceeds 100 MiB and may delay processing",
		Recommendation: "Downsample oversized images or split the document",
	}
}

// RiskScore is the severity-weighted average across detected issues,
// normalized so a single High issue alone scores 100 while a pile of Low
// issues stays low. An empty issue list scores zero.
func RiskScore(issues []Issue) int {
	if len(issues) == 0 {
		return 0
	}
	total := 0
	for _, issue := range issues {
		total += severityWeights[issue.Severity]
	}
	normalized := float64(total) / float64(len(issues)*10) * 100
	if normalized > 100 {
		normalized = 100
	}
	return int(math.Round(normalized))
}
