package analysis

import (
	"prepress/internal/artifact"
	"prepress/internal/detect"
)

// Artifact is one uploaded design file awaiting analysis. The upload layer
// guarantees the declared extension and a size cap before this subsystem
// is invoked; those constraints are not re-validated here.
type Artifact struct {
	ID       string
	Filename string
	MIMEType string
	Data     []byte
}

// Report is the aggregate analysis result for one artifact. It is created
// once per run and never mutated; re-analysis produces a new report.
type Report struct {
	ArtifactID          string            `json:"artifact_id"`
	Filename            string            `json:"filename"`
	Metadata            artifact.Metadata `json:"metadata"`
	Issues              []detect.Issue    `json:"issues"`
	RiskScore           int               `json:"risk_score"`
	RiskLevel           detect.RiskLevel  `json:"risk_level"`
	PrintReadinessScore int               `json:"print_readiness_score"`

	// DesignComplexity and Printability are the derived 0-100 scores the
	// cost model consumes.
	DesignComplexity float64 `json:"design_complexity"`
	Printability     float64 `json:"printability"`

	// Degraded is set when extraction failed and the report was built from
	// unknown metadata.
	Degraded bool `json:"degraded,omitempty"`
}

// designComplexity derives a deterministic 0-100 complexity score from
// metadata signals: transparency, hairline strokes, unembedded fonts, and
// page count all make an artifact harder to produce.
func designComplexity(md artifact.Metadata) float64 {
	score := 30.0
	if md.HasTransparency {
		score += 20
	}
	if md.HasThinLines {
		score += 15
	}
	if len(md.UnembeddedFonts) > 0 {
		score += 10
	}
	if md.PageCount > 1 {
		score += 5 * float64(md.PageCount-1)
	}
	if score > 85 {
		score = 85
	}
	return score
}
