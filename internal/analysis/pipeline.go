package analysis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"prepress/internal/artifact"
	"prepress/internal/costing"
	"prepress/internal/detect"
	"prepress/internal/extract"
	"prepress/internal/logging"
	"prepress/internal/materials"
)

// Options configures a Pipeline.
type Options struct {
	// Workers bounds batch concurrency. Zero means 4.
	Workers int
	// MaxPDFPages is forwarded to the extractor.
	MaxPDFPages int
	Logger      *slog.Logger
}

// ProgressFunc receives completed/total after each batch item finishes.
type ProgressFunc func(completed, total int)

// Pipeline runs the full analysis flow. It holds no per-artifact state and
// is safe for concurrent use.
type Pipeline struct {
	extractor *extract.Extractor
	workers   int
	logger    *slog.Logger
}

// New constructs a Pipeline.
func New(opts Options) *Pipeline {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	logger := logging.NewComponentLogger(opts.Logger, "analysis")
	return &Pipeline{
		extractor: extract.New(extract.Options{MaxPDFPages: opts.MaxPDFPages, Logger: opts.Logger}),
		workers:   workers,
		logger:    logger,
	}
}

// AnalyzeOne runs extraction and detection for a single artifact and
// assembles its report. Extraction failure is not an error: the report
// degrades to unknown metadata with a single informational issue.
func (p *Pipeline) AnalyzeOne(ctx context.Context, art Artifact) Report {
	if err := ctx.Err(); err != nil {
		return p.degradedReport(art, err)
	}

	id := art.ID
	if id == "" {
		id = uuid.NewString()
	}

	md, err := p.extractor.Extract(art.Data, art.MIMEType, art.Filename)
	if err != nil {
		if !errors.Is(err, extract.ErrUnsupportedFormat) {
			p.logger.Warn("extraction failed",
				logging.String(logging.FieldArtifactID, id),
				logging.Error(err),
			)
		}
		return p.degradedReport(Artifact{ID: id, Filename: art.Filename, Data: art.Data}, err)
	}

	result := detect.Detect(md)
	report := Report{
		ArtifactID:          id,
		Filename:            art.Filename,
		Metadata:            md,
		Issues:              result.Issues,
		RiskScore:           result.RiskScore,
		RiskLevel:           result.RiskLevel,
		PrintReadinessScore: result.PrintReadinessScore,
		DesignComplexity:    designComplexity(md),
		Printability:        float64(result.PrintReadinessScore),
	}

	p.logger.Info("artifact analyzed",
		logging.String(logging.FieldArtifactID, id),
		logging.String(logging.FieldFormat, string(md.Format)),
		logging.Int("issues", len(report.Issues)),
		logging.Int("risk_score", report.RiskScore),
		logging.Int("readiness", report.PrintReadinessScore),
	)
	return report
}

// degradedReport is the fail-soft result for bytes that could not be
// parsed: unknown metadata plus one informational issue, never an error.
func (p *Pipeline) degradedReport(art Artifact, cause error) Report {
	id := art.ID
	if id == "" {
		id = uuid.NewString()
	}
	p.logger.Info("degrading report for unparseable artifact",
		logging.String(logging.FieldArtifactID, id),
		logging.String(logging.FieldFilename, art.Filename),
		logging.Error(cause),
	)

	md := artifact.Unknown(uint64(len(art.Data)))
	issues := []detect.Issue{{
		Category:       detect.CategoryFileSize,
		Severity:       detect.SeverityLow,
		Message:        "File could not be parsed; analysis is limited to basic properties",
		Recommendation: "Re-export the artwork as PDF, PNG, SVG, JPEG, TIFF, EPS, or AI",
	}}
	risk := detect.RiskScore(issues)
	return Report{
		ArtifactID:          id,
		Filename:            art.Filename,
		Metadata:            md,
		Issues:              issues,
		RiskScore:           risk,
		RiskLevel:           detect.LevelForScore(risk),
		PrintReadinessScore: 0,
		DesignComplexity:    designComplexity(md),
		Printability:        0,
		Degraded:            true,
	}
}

// AnalyzeBatch analyzes artifacts independently, preserving input order in
// the returned slice. Items run on a bounded worker pool; cancelling the
// context stops unstarted work while completed reports are kept. onProgress,
// when non-nil, observes completed/total after each item.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, arts []Artifact, onProgress ProgressFunc) []Report {
	reports := make([]Report, len(arts))
	if len(arts) == 0 {
		return reports
	}

	sampler := logging.NewProgressSampler(0)
	completed := make(chan int, len(arts))
	progressDone := make(chan struct{})

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.workers)

	go func() {
		defer close(progressDone)
		done := 0
		for range completed {
			done++
			if onProgress != nil {
				onProgress(done, len(arts))
			}
			percent := float64(done) / float64(len(arts)) * 100
			if sampler.ShouldLog(percent, "batch") {
				p.logger.Info("batch progress",
					logging.Int("completed", done),
					logging.Int("total", len(arts)),
					logging.Float64("percent", percent),
				)
			}
		}
	}()

	for i, art := range arts {
		i, art := i, art
		group.Go(func() error {
			// Each worker owns its artifact exclusively; cancellation is
			// artifact-granular via the shared group context.
			reports[i] = p.AnalyzeOne(groupCtx, art)
			completed <- i
			return nil
		})
	}

	_ = group.Wait()
	close(completed)
	<-progressDone
	return reports
}

// Recommend ranks the catalog's candidates for the product type against
// the artifact metadata and priority weights. Callable independently of a
// fresh analysis run.
func (p *Pipeline) Recommend(md artifact.Metadata, catalog materials.Catalog, productType string, weights materials.Weights) []materials.Recommendation {
	return materials.Rank(catalog.ForProductType(productType), md, weights)
}

// EstimateCost prices a production run using the report's derived
// complexity and printability scores.
func (p *Pipeline) EstimateCost(report Report, productType, materialType string, quantity int) (costing.Estimate, error) {
	return costing.Compute(costing.Input{
		ProductType:      productType,
		MaterialType:     materialType,
		Quantity:         quantity,
		ColorSpace:       report.Metadata.ColorSpace,
		DesignComplexity: report.DesignComplexity,
		Printability:     report.Printability,
	})
}
