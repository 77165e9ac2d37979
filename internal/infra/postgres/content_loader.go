package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"radcase-engine/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ContentLoader loads case and event JSONB from Postgres.
type ContentLoader struct {
	pool *pgxpool.Pool
}

func NewContentLoader(pool *pgxpool.Pool) *ContentLoader {
	return &ContentLoader{pool: pool}
}

func (l *ContentLoader) LoadCase(ctx context.Context, caseID string) (domain.Case, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM cases WHERE id=$1`, caseID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Case{}, domain.ErrCaseNotFound
	}
	if err != nil {
		return domain.Case{}, fmt.Errorf("load case: %w", err)
	}
	var cs domain.Case
	if err := json.Unmarshal(raw, &cs); err != nil {
		return domain.Case{}, fmt.Errorf("unmarshal case: %w", err)
	}
	return cs, nil
}

func (l *ContentLoader) LoadEvent(ctx context.Context, eventID string) (domain.Event, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM events WHERE id=$1`, eventID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Event{}, domain.ErrEventNotFound
	}
	if err != nil {
		return domain.Event{}, fmt.Errorf("load event: %w", err)
	}
	var event domain.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return domain.Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}

// GetEvent satisfies app.EventRepository directly; event definitions are
// small enough to read uncached.
func (l *ContentLoader) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	return l.LoadEvent(ctx, eventID)
}
