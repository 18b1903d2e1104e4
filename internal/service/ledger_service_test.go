package service

import (
	"context"
	"testing"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/importer"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/repository"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_FindRecords(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	runs := repository.NewSQLiteRunRepo(database)
	logs := repository.NewSQLiteWorkLogRepo(database)
	results := repository.NewSQLiteReplayResultRepo(database)
	svc := NewLedgerService(runs, logs, results)

	older := testutil.NewTestRun("marzo.xlsx", testutil.WithCreatedAt(time.Date(2025, 3, 31, 8, 0, 0, 0, time.UTC)))
	newer := testutil.NewTestRun("abril.xlsx", testutil.WithCreatedAt(time.Date(2025, 4, 3, 8, 0, 0, 0, time.UTC)))
	for _, r := range []*domain.Run{older, newer} {
		require.NoError(t, runs.Create(ctx, r))
	}
	_, err := logs.CreateBatch(ctx, older.ID, []domain.WorkLog{
		testutil.NewTestWorkLog(7027, testutil.WithDate("25-03-31")),
	})
	require.NoError(t, err)
	_, err = logs.CreateBatch(ctx, newer.ID, []domain.WorkLog{
		testutil.NewTestWorkLog(7027),
		testutil.NewTestWorkLog(7028, testutil.WithOperator("Ana Perez"), testutil.WithTeam("31")),
	})
	require.NoError(t, err)

	listed, err := svc.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].ID)

	byOP, err := svc.FindRecords(ctx, repository.WorkLogFilter{OP: 7027})
	require.NoError(t, err)
	assert.Len(t, byOP, 2)

	byDate, err := svc.FindRecords(ctx, repository.WorkLogFilter{Date: "31/03/2025"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, older.ID, byDate[0].RunID)

	byOperator, err := svc.FindRecords(ctx, repository.WorkLogFilter{Operator: "perez", Team: "31"})
	require.NoError(t, err)
	require.Len(t, byOperator, 1)
	assert.Equal(t, 7028, byOperator[0].Log.OP)

	byStoredDate, err := svc.FindRecords(ctx, repository.WorkLogFilter{Date: "25-03-31"})
	require.NoError(t, err)
	require.Len(t, byStoredDate, 1)
	assert.Equal(t, older.ID, byStoredDate[0].RunID)

	_, err = svc.FindRecords(ctx, repository.WorkLogFilter{Date: "ayer"})
	assert.ErrorIs(t, err, importer.ErrBadDate)
}

func TestLedger_ReplayResults(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	runs := repository.NewSQLiteRunRepo(database)
	results := repository.NewSQLiteReplayResultRepo(database)
	svc := NewLedgerService(runs, repository.NewSQLiteWorkLogRepo(database), results)

	run := testutil.NewTestRun("abril.xlsx")
	require.NoError(t, runs.Create(ctx, run))
	require.NoError(t, results.Create(ctx, &domain.ReplayResult{
		ID: "r1", RunID: run.ID, Seq: 1, Status: domain.ReplayReplayed, CreatedAt: time.Now().UTC(),
	}))

	got, err := svc.ReplayResults(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.ReplayReplayed, got[0].Status)

	_, err = svc.ReplayResults(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	fetched, err := svc.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.SourcePath, fetched.SourcePath)
}
