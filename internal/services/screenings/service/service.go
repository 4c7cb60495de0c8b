// Package service contains screenings workflows
package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"carelens/internal/core/sdoh"
	"carelens/internal/modkit/repokit"
	perr "carelens/internal/platform/errors"
	detectdom "carelens/internal/services/detect/domain"
	"carelens/internal/services/screenings/domain"
	"carelens/internal/services/screenings/repo"
)

// Service defines the service contract for screenings
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Runner detectdom.RunnerPort
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new screenings service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], runner detectdom.RunnerPort) *Svc {
	if db == nil {
		panic("screenings.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("screenings.Service requires a non nil Repo binder")
	}
	if runner == nil {
		panic("screenings.Service requires a non nil detect runner")
	}
	return &Svc{Runner: runner, Repo: binder.Bind(db), binder: binder, db: db}
}

// Run executes a detection for the member's transcript and records the
// screening. The detection result is returned alongside the stored record
func (s *Svc) Run(ctx context.Context, in domain.RunInput) (*domain.RunOutput, error) {
	res, err := s.Runner.Detect(ctx, detectdom.DetectInput{
		MemberID:   in.MemberID,
		Transcript: in.Transcript,
		Context:    in.Context,
	})
	if err != nil {
		return nil, err
	}

	findingsJSON, err := json.Marshal(res.Findings)
	if err != nil {
		return nil, perr.JSONErrf("encode findings: %v", err)
	}

	row := repo.RowScreening{
		ID:            uuid.NewString(),
		MemberID:      in.MemberID,
		Channel:       channelOr(in.Channel),
		Engine:        string(res.Engine),
		FindingCount:  len(res.Findings),
		TotalValue:    res.Revenue.PotentialRevenue,
		NeedsFollowUp: needsFollowUp(res.Findings),
		FindingsJSON:  findingsJSON,
	}
	createdAt, err := s.Repo.Insert(ctx, row)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "insert screening")
	}

	return &domain.RunOutput{
		Screening: domain.Screening{
			ID:            row.ID,
			MemberID:      row.MemberID,
			Channel:       row.Channel,
			Engine:        row.Engine,
			FindingCount:  row.FindingCount,
			TotalValue:    row.TotalValue,
			NeedsFollowUp: row.NeedsFollowUp,
			Findings:      res.Findings,
			CreatedAt:     createdAt,
		},
		Result: res,
	}, nil
}

// Recent lists recorded screenings, newest first
func (s *Svc) Recent(ctx context.Context, in domain.RecentInput) ([]domain.Screening, error) {
	rows, err := s.Repo.Recent(ctx, in.MemberID, in.Limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "list screenings")
	}
	out := make([]domain.Screening, 0, len(rows))
	for _, r := range rows {
		sc := domain.Screening{
			ID:            r.ID,
			MemberID:      r.MemberID,
			Channel:       r.Channel,
			Engine:        r.Engine,
			FindingCount:  r.FindingCount,
			TotalValue:    r.TotalValue,
			NeedsFollowUp: r.NeedsFollowUp,
			CreatedAt:     r.CreatedAt,
		}
		if len(r.FindingsJSON) > 0 {
			if err := json.Unmarshal(r.FindingsJSON, &sc.Findings); err != nil {
				return nil, perr.JSONErrf("decode findings for %s: %v", r.ID, err)
			}
		}
		out = append(out, sc)
	}
	return out, nil
}

func channelOr(ch string) string {
	if ch == "" {
		return "call"
	}
	return ch
}

func needsFollowUp(findings []sdoh.Finding) bool {
	for _, f := range findings {
		if f.Urgency == sdoh.UrgencyHigh {
			return true
		}
	}
	return false
}
