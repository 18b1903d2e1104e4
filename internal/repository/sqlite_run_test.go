package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	stats := domain.RunStats{
		Operator:    "Nelson Rangel",
		Records:     3,
		DistinctOPs: 3,
		TotalHours:  150,
		Dates:       []string{"25-04-03"},
		SheetsFound: 2,
		SheetsRead:  1,
	}
	run := testutil.NewTestRun("hoja.xlsx", testutil.WithRunStats(stats))
	run.RecordFile = "output/nelson_rangel_20250403_101500.json"
	require.NoError(t, repo.Create(ctx, run))

	fetched, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.SourcePath, fetched.SourcePath)
	assert.Equal(t, run.RecordFile, fetched.RecordFile)
	assert.Equal(t, "30", fetched.Team)
	assert.Equal(t, stats, fetched.Stats)
	assert.True(t, run.CreatedAt.Equal(fetched.CreatedAt))
}

func TestRunRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunRepo_ListNewestFirst(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 4, 3, 10, 0, 0, 0, time.UTC)

	older := testutil.NewTestRun("a.xlsx", testutil.WithCreatedAt(base))
	newer := testutil.NewTestRun("b.xlsx", testutil.WithCreatedAt(base.Add(time.Hour)))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, older.ID, runs[1].ID)
}
