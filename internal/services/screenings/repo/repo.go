// Package repo provides postgres access for screenings
package repo

import (
	"context"

	"carelens/internal/modkit/repokit"
)

// Repo defines the repository contract for screenings
type Repo interface {
	Insert(ctx context.Context, row RowScreening) (string, error)
	Recent(ctx context.Context, memberID string, limit int) ([]RowScreening, error)
}

// RowScreening represents a screening row in the database.
// Findings travel as serialized JSON; the service owns the shape
type RowScreening struct {
	ID            string
	MemberID      string
	Channel       string
	Engine        string
	FindingCount  int
	TotalValue    float64
	NeedsFollowUp bool
	FindingsJSON  []byte
	CreatedAt     string
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, row RowScreening) (string, error) {
	const sql = `
insert into screenings (id, member_id, channel, engine, finding_count, total_value, needs_follow_up, findings)
values ($1, $2, $3, $4, $5, $6, $7, $8)
returning created_at::text
`
	var createdAt string
	err := r.q.QueryRow(ctx, sql,
		row.ID,
		row.MemberID,
		row.Channel,
		row.Engine,
		row.FindingCount,
		row.TotalValue,
		row.NeedsFollowUp,
		row.FindingsJSON,
	).Scan(&createdAt)
	return createdAt, err
}

func (r *queries) Recent(ctx context.Context, memberID string, limit int) ([]RowScreening, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const sql = `
select id::text, member_id, channel, engine, finding_count, total_value, needs_follow_up, findings, created_at::text
from screenings
where ($1 = '' or member_id = $1)
order by created_at desc
limit $2
`
	rows, err := r.q.Query(ctx, sql, memberID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowScreening
	for rows.Next() {
		var rr RowScreening
		if err := rows.Scan(
			&rr.ID,
			&rr.MemberID,
			&rr.Channel,
			&rr.Engine,
			&rr.FindingCount,
			&rr.TotalValue,
			&rr.NeedsFollowUp,
			&rr.FindingsJSON,
			&rr.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
