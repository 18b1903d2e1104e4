package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayResultRepo_CreateAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	run := testutil.NewTestRun("hoja.xlsx")
	require.NoError(t, NewSQLiteRunRepo(database).Create(ctx, run))
	repo := NewSQLiteReplayResultRepo(database)
	now := time.Date(2025, 4, 3, 10, 0, 0, 0, time.UTC)

	ok := &domain.ReplayResult{ID: uuid.New().String(), RunID: run.ID, Seq: 1, Status: domain.ReplayReplayed, CreatedAt: now}
	failed := &domain.ReplayResult{
		ID:        uuid.New().String(),
		RunID:     run.ID,
		Seq:       2,
		Status:    domain.ReplayFailed,
		Field:     "operator",
		Error:     "no option matches",
		Completed: []string{"date", "op"},
		CreatedAt: now.Add(time.Second),
	}
	require.NoError(t, repo.Create(ctx, ok))
	require.NoError(t, repo.Create(ctx, failed))

	got, err := repo.ListByRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.ReplayReplayed, got[0].Status)
	assert.Nil(t, got[0].Completed)
	assert.Equal(t, *failed, got[1])
}

func TestReplayResultRepo_RejectsUnknownStatus(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	run := testutil.NewTestRun("hoja.xlsx")
	require.NoError(t, NewSQLiteRunRepo(database).Create(ctx, run))

	err := NewSQLiteReplayResultRepo(database).Create(ctx, &domain.ReplayResult{
		ID: "x", RunID: run.ID, Seq: 1, Status: "bogus", CreatedAt: time.Now(),
	})
	assert.Error(t, err)
}
