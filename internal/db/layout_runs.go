package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a layout run does not exist.
var ErrNotFound = errors.New("layout run not found")

// DefaultListLimit caps ListLayoutRuns when the caller passes no limit.
const DefaultListLimit = 50

const layoutRunColumns = `id, variant, source, page_budget_mm, total_content_mm, slack_mm,
	spacing_mm, distribute_slack, tight, section_count, sections, created_at`

// SaveLayoutRun inserts run and fills in its generated ID and timestamp.
func (db *DB) SaveLayoutRun(ctx context.Context, run *LayoutRun) error {
	sections := run.Sections
	if sections == nil {
		sections = []string{}
	}
	sectionsJSON, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO layout_runs (variant, source, page_budget_mm, total_content_mm, slack_mm,
			spacing_mm, distribute_slack, tight, section_count, sections)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		run.Variant, run.Source, run.PageBudgetMm, run.TotalContentMm, run.SlackMm,
		run.SpacingMm, run.DistributeSlack, run.Tight, run.SectionCount, sectionsJSON,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save layout run: %w", err)
	}

	db.log.Debug("saved layout run",
		zap.String("id", run.ID.String()),
		zap.String("variant", run.Variant),
		zap.Bool("tight", run.Tight),
	)
	return nil
}

// GetLayoutRun returns one run by ID, or ErrNotFound.
func (db *DB) GetLayoutRun(ctx context.Context, id uuid.UUID) (*LayoutRun, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+layoutRunColumns+` FROM layout_runs WHERE id = $1`,
		id,
	)
	run, err := scanLayoutRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get layout run: %w", err)
	}
	return run, nil
}

// ListLayoutRuns returns the most recent runs, newest first.
func (db *DB) ListLayoutRuns(ctx context.Context, limit int) ([]LayoutRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+layoutRunColumns+` FROM layout_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list layout runs: %w", err)
	}
	defer rows.Close()

	runs := make([]LayoutRun, 0)
	for rows.Next() {
		run, err := scanLayoutRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan layout run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate layout runs: %w", err)
	}
	return runs, nil
}

func scanLayoutRun(row pgx.Row) (*LayoutRun, error) {
	var (
		run          LayoutRun
		sectionsJSON []byte
	)
	if err := row.Scan(
		&run.ID, &run.Variant, &run.Source, &run.PageBudgetMm, &run.TotalContentMm, &run.SlackMm,
		&run.SpacingMm, &run.DistributeSlack, &run.Tight, &run.SectionCount, &sectionsJSON, &run.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sectionsJSON, &run.Sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}
	return &run, nil
}
