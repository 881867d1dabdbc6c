package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sebastian-gm/hr-data-insights/pkg/contracts/domain"
)

// Pipeline owns the normalize -> derive -> validate flow. All stages are
// pure computations over in-memory rows; reading and writing the dataset is
// the caller's concern. Running the same input with the same reference date
// twice yields identical output.
type Pipeline struct {
	logger      *slog.Logger
	validator   *Validator
	parallelism int
}

// PipelineConfig holds configuration options for the Pipeline.
type PipelineConfig struct {
	AgeCeiling  int // Passed through to the validator
	Parallelism int // Worker count for normalization; <=1 runs sequentially
}

// Result is the complete output of one pipeline run: the canonical table in
// input order plus the findings feed.
type Result struct {
	RunID    string                  `json:"run_id"`
	AsOf     time.Time               `json:"as_of"`
	Records  []domain.EmployeeRecord `json:"records"`
	Findings []domain.Finding        `json:"findings"`
}

// NewPipeline creates a pipeline with the given configuration.
func NewPipeline(logger *slog.Logger, config PipelineConfig) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Parallelism <= 0 {
		config.Parallelism = 1
	}
	return &Pipeline{
		logger:      logger,
		validator:   NewValidator(logger, ValidatorConfig{AgeCeiling: config.AgeCeiling}),
		parallelism: config.Parallelism,
	}
}

// Run executes the full pipeline over the raw rows relative to the explicit
// reference date. The canonical output has the same length and order as the
// input; no record is ever dropped here. Per-record problems degrade to
// findings, so Run only fails when the context is cancelled.
func (p *Pipeline) Run(ctx context.Context, raws []domain.RawRecord, asOf time.Time) (*Result, error) {
	runID := uuid.NewString()
	p.logger.InfoContext(ctx, "starting pipeline run",
		slog.String("run_id", runID),
		slog.Int("raw_count", len(raws)),
		slog.String("as_of", asOf.Format("2006-01-02")))

	records, findings, err := p.normalizeAll(ctx, raws, asOf)
	if err != nil {
		return nil, err
	}

	findings = append(findings, p.validator.Validate(records, asOf)...)
	sortFindings(findings)

	p.logger.InfoContext(ctx, "pipeline run complete",
		slog.String("run_id", runID),
		slog.Int("record_count", len(records)),
		slog.Int("finding_count", len(findings)))

	return &Result{
		RunID:    runID,
		AsOf:     asOf,
		Records:  records,
		Findings: findings,
	}, nil
}

// normalizeAll runs normalization and derivation over every raw row. Rows
// are independent, so the work fans out across workers when parallelism is
// configured; results land in a positional slice, which re-imposes the input
// order before validation sees the sequence.
func (p *Pipeline) normalizeAll(ctx context.Context, raws []domain.RawRecord, asOf time.Time) ([]domain.EmployeeRecord, []domain.Finding, error) {
	records := make([]domain.EmployeeRecord, len(raws))
	perRow := make([][]domain.Finding, len(raws))

	if p.parallelism > 1 {
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(p.parallelism)
		for i := range raws {
			i := i
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				record, findings := Normalize(raws[i], i)
				records[i] = Derive(record, asOf)
				perRow[i] = findings
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	} else {
		for i := range raws {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			record, findings := Normalize(raws[i], i)
			records[i] = Derive(record, asOf)
			perRow[i] = findings
		}
	}

	var findings []domain.Finding
	for _, row := range perRow {
		findings = append(findings, row...)
	}
	return records, findings, nil
}

// sortFindings imposes the deterministic feed order: employee ID, then
// finding kind, then input row. Stable so that equal keys keep the order the
// rules emitted them in.
func sortFindings(findings []domain.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].RecordID != findings[j].RecordID {
			return findings[i].RecordID < findings[j].RecordID
		}
		if findings[i].Kind != findings[j].Kind {
			return findings[i].Kind < findings[j].Kind
		}
		return findings[i].Row < findings[j].Row
	})
}
