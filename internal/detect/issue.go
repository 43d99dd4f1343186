package detect

// Category identifies the production concern an issue belongs to.
// Detection always emits categories in the order listed here.
type Category string

const (
	CategoryResolution   Category = "resolution"
	CategoryColor        Category = "color"
	CategoryLayout       Category = "layout"
	CategoryFont         Category = "font"
	CategoryTransparency Category = "transparency"
	CategoryFileSize     Category = "file_size"
)

// Severity grades how strongly an issue threatens print quality.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// severityWeights drive the normalized risk-score average.
var severityWeights = map[Severity]int{
	SeverityHigh:   10,
	SeverityMedium: 5,
	SeverityLow:    2,
}

// Rect is an optional location in artifact coordinate space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Issue is one detected production defect. Immutable once created.
type Issue struct {
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
	Location       *Rect    `json:"location,omitempty"`
}

// RiskLevel buckets the numeric risk score for display.
type RiskLevel string

const (
	RiskMinimal RiskLevel = "minimal"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// LevelForScore maps a 0-100 risk score to its level bucket.
func LevelForScore(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	case score >= 10:
		return RiskLow
	default:
		return RiskMinimal
	}
}
