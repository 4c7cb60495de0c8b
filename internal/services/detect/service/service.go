// Package service implements the detection engine behind the detect module
package service

import (
	"context"
	"math/rand"
	"time"

	"carelens/internal/adapters/inference"
	"carelens/internal/core/catalog"
	"carelens/internal/core/detector"
	"carelens/internal/core/langhint"
	"carelens/internal/core/merge"
	"carelens/internal/core/sdoh"
	"carelens/internal/core/synth"
	"carelens/internal/platform/logger"
	"carelens/internal/services/detect/domain"
)

// Config for the detect service
type Config struct {
	Workers int          // batch concurrency, min 1
	Policy  merge.Policy // status tie-break behavior for rule-based folds
}

// Service implements domain.RunnerPort
type Service struct {
	Cat   *catalog.Catalog
	Det   *detector.Detector
	Infer inference.Client // nil when no credentials are configured
	Cfg   Config

	now func() time.Time
	rng func() *rand.Rand
}

// New constructs a new detect service. A nil inference client means the
// rule-based engine handles every request
func New(cat *catalog.Catalog, infer inference.Client, cfg Config) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Service{
		Cat:   cat,
		Det:   detector.New(cat),
		Infer: infer,
		Cfg:   cfg,
		now:   time.Now,
		rng: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// WithClock overrides the time source, for tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithRand overrides the trend generator source, for tests
func (s *Service) WithRand(rng func() *rand.Rand) *Service {
	s.rng = rng
	return s
}

// Detect analyzes one encounter transcript. The model engine runs first when
// credentialed; any model failure falls back to the rule-based engine, so a
// single result never mixes findings from both
func (s *Service) Detect(ctx context.Context, in domain.DetectInput) (*domain.DetectionResult, error) {
	started := time.Now()

	engine, findings := s.runEngines(ctx, in.Transcript)

	sctx := s.resolveContext(in)
	res := &domain.DetectionResult{
		Engine:        engine,
		Findings:      findings,
		Documentation: synth.BuildDocumentation(findings),
		Revenue:       synth.BuildRevenue(findings, sctx, s.rng()),
		Compliance:    synth.BuildCompliance(findings, sctx, s.now()),
		Debug: domain.Debug{
			Lines:     len(in.Transcript),
			Patterns:  s.Det.PatternCount(),
			ElapsedMs: time.Since(started).Milliseconds(),
			Languages: langhint.Summary(in.Transcript),
		},
	}
	return res, nil
}

// runEngines picks the detection path. Model failures are logged and
// swallowed here; they never reach the caller
func (s *Service) runEngines(ctx context.Context, lines []sdoh.TranscriptLine) (sdoh.Engine, []sdoh.Finding) {
	if s.Infer != nil && len(lines) > 0 {
		out := s.Infer.DetectIssues(ctx, lines)
		switch out.Kind {
		case inference.OutcomeFindings:
			if findings := s.reshapeModel(out.Issues); len(findings) > 0 {
				return sdoh.EngineModel, findings
			}
			logger.C(ctx).Warn().Msg("inference issues held no usable codes, falling back to rule-based")
		case inference.OutcomeUnavailable:
			logger.C(ctx).Warn().Err(out.Err).Msg("inference unavailable, falling back to rule-based")
		case inference.OutcomeMalformed:
			logger.C(ctx).Warn().Err(out.Err).Msg("inference response malformed, falling back to rule-based")
		default:
			logger.C(ctx).Warn().Int("kind", int(out.Kind)).Msg("unknown inference outcome, falling back to rule-based")
		}
	}
	return sdoh.EngineRuleBased, s.ruleBased(lines)
}

// ruleBased runs every transcript line through the pattern matcher and folds
// the per-line findings into one merged set
func (s *Service) ruleBased(lines []sdoh.TranscriptLine) []sdoh.Finding {
	acc := merge.NewAccumulator(s.Cfg.Policy)
	for _, ln := range lines {
		acc.Fold(s.Det.Scan(ln))
	}
	return acc.Result()
}

func (s *Service) resolveContext(in domain.DetectInput) synth.Context {
	out := synth.Context{
		RequiredScreenings:  synth.DefaultRequiredScreenings,
		CompletedScreenings: synth.DefaultCompletedScreenings,
	}
	if in.Context == nil {
		return out
	}
	out.EncounterID = in.Context.EncounterID
	if in.Context.RequiredScreenings != nil {
		out.RequiredScreenings = *in.Context.RequiredScreenings
	}
	if in.Context.CompletedScreenings != nil {
		out.CompletedScreenings = *in.Context.CompletedScreenings
	}
	if in.Context.MonthlyGoal != nil {
		out.MonthlyGoal = *in.Context.MonthlyGoal
	}
	return out
}
