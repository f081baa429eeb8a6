package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-layout/internal/layout"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var layoutRunColumnNames = []string{
	"id", "variant", "source", "page_budget_mm", "total_content_mm", "slack_mm",
	"spacing_mm", "distribute_slack", "tight", "section_count", "sections", "created_at",
}

func newMockDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	mockPool.ExpectPing()
	db, err := New(context.Background(), mockPool, zap.NewNop())
	require.NoError(t, err)
	return db, mockPool
}

func TestNew_PingFails(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	pingErr := errors.New("database unavailable")
	mockPool.ExpectPing().WillReturnError(pingErr)

	_, err = New(context.Background(), mockPool, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, pingErr)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS layout_runs").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, db.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_Error(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS layout_runs").
		WillReturnError(errors.New("permission denied"))

	err := db.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create layout_runs table")
}

func TestSaveLayoutRun(t *testing.T) {
	db, mock := newMockDB(t)

	id := uuid.New()
	createdAt := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	run := LayoutRun{
		Variant:        "classic",
		Source:         SourceCLI,
		PageBudgetMm:   207,
		TotalContentMm: 140,
		SlackMm:        67,
		SpacingMm:      17,
		SectionCount:   5,
		Sections:       []string{"summary", "experience", "education", "skills", "projects"},
	}

	mock.ExpectQuery("INSERT INTO layout_runs").
		WithArgs("classic", SourceCLI, 207.0, 140.0, 67.0, 17, false, false, 5, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(id, createdAt))

	require.NoError(t, db.SaveLayoutRun(context.Background(), &run))
	assert.Equal(t, id, run.ID)
	assert.Equal(t, createdAt, run.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveLayoutRun_Error(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("INSERT INTO layout_runs").
		WillReturnError(errors.New("connection reset"))

	err := db.SaveLayoutRun(context.Background(), &LayoutRun{Variant: "classic"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save layout run")
}

func TestGetLayoutRun(t *testing.T) {
	db, mock := newMockDB(t)

	id := uuid.New()
	createdAt := time.Date(2026, 10, 2, 8, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM layout_runs WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(layoutRunColumnNames).AddRow(
			id, "banner", SourceHTTP, 197.0, 232.0, -35.0, 10, false, true, 2,
			[]byte(`["summary","experience"]`), createdAt,
		))

	run, err := db.GetLayoutRun(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, &LayoutRun{
		ID:             id,
		Variant:        "banner",
		Source:         SourceHTTP,
		PageBudgetMm:   197,
		TotalContentMm: 232,
		SlackMm:        -35,
		SpacingMm:      10,
		Tight:          true,
		SectionCount:   2,
		Sections:       []string{"summary", "experience"},
		CreatedAt:      createdAt,
	}, run)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLayoutRun_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	id := uuid.New()
	mock.ExpectQuery(`FROM layout_runs WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(layoutRunColumnNames))

	_, err := db.GetLayoutRun(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListLayoutRuns(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)
	first, second := uuid.New(), uuid.New()
	mock.ExpectQuery(`FROM layout_runs ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows(layoutRunColumnNames).
			AddRow(first, "classic", SourceHTTP, 207.0, 100.0, 107.0, 40, true, false, 2, []byte(`["summary","skills"]`), now).
			AddRow(second, "classic", SourceCLI, 207.0, 190.0, 17.0, 12, false, false, 3, []byte(`["summary","skills","awards"]`), now.Add(-time.Hour)))

	runs, err := db.ListLayoutRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.True(t, runs[0].DistributeSlack)
	assert.Equal(t, []string{"summary", "skills", "awards"}, runs[1].Sections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListLayoutRuns_DefaultLimit(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM layout_runs ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(DefaultListLimit).
		WillReturnRows(pgxmock.NewRows(layoutRunColumnNames))

	runs, err := db.ListLayoutRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NotNil(t, runs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewLayoutRun(t *testing.T) {
	l := layout.Layout{
		Sections: []layout.SectionEstimate{
			{Kind: layout.KindSummary, Key: "summary", HeightMm: 20},
			{Kind: layout.KindSkills, Key: "skills", HeightMm: 12},
		},
		TotalContentMm: 32,
		PageBudgetMm:   207,
		SlackMm:        175,
		Plan:           layout.SpacingPlan{InterSectionSpacingMm: 40, DistributeSlack: true},
	}

	run := NewLayoutRun("classic", SourceHTTP, l)

	assert.Equal(t, LayoutRun{
		Variant:         "classic",
		Source:          SourceHTTP,
		PageBudgetMm:    207,
		TotalContentMm:  32,
		SlackMm:         175,
		SpacingMm:       40,
		DistributeSlack: true,
		SectionCount:    2,
		Sections:        []string{"summary", "skills"},
	}, run)
}
