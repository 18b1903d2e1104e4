package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workLogTestSetup(t *testing.T) (*sql.DB, *SQLiteWorkLogRepo, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	run := testutil.NewTestRun("hoja.xlsx")
	require.NoError(t, NewSQLiteRunRepo(database).Create(context.Background(), run))
	return database, NewSQLiteWorkLogRepo(database), run.ID
}

func ops(logs []domain.StoredWorkLog) []int {
	out := make([]int, len(logs))
	for i, l := range logs {
		out[i] = l.Log.OP
	}
	return out
}

func TestWorkLogRepo_CreateBatchPreservesOrder(t *testing.T) {
	_, repo, runID := workLogTestSetup(t)
	ctx := context.Background()

	logs := []domain.WorkLog{
		testutil.NewTestWorkLog(7029, testutil.WithHours(domain.HalfHour, 0)),
		testutil.NewTestWorkLog(7027, testutil.WithHours(250, 150)),
		testutil.NewTestWorkLog(7028),
	}
	stored, err := repo.CreateBatch(ctx, runID, logs)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, 1, stored[0].Seq)
	assert.Equal(t, 3, stored[2].Seq)

	got, err := repo.ListByRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, []int{7029, 7027, 7028}, ops(got))
	assert.Equal(t, logs[1], got[1].Log)
	assert.Equal(t, stored[1].ID, got[1].ID)
}

func TestWorkLogRepo_Find(t *testing.T) {
	database, repo, runID := workLogTestSetup(t)
	ctx := context.Background()

	_, err := repo.CreateBatch(ctx, runID, []domain.WorkLog{
		testutil.NewTestWorkLog(7027),
		testutil.NewTestWorkLog(7028, testutil.WithDate("25-04-04")),
		testutil.NewTestWorkLog(7027, testutil.WithDate("25-04-04"), testutil.WithOperator("Ana Perez"), testutil.WithTeam("31")),
	})
	require.NoError(t, err)

	other := testutil.NewTestRun("otra.xlsx", testutil.WithCreatedAt(time.Now().UTC().Add(time.Hour)))
	require.NoError(t, NewSQLiteRunRepo(database).Create(ctx, other))
	_, err = repo.CreateBatch(ctx, other.ID, []domain.WorkLog{testutil.NewTestWorkLog(9000)})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter WorkLogFilter
		want   []int
	}{
		{"all", WorkLogFilter{}, []int{7027, 7028, 7027, 9000}},
		{"by run", WorkLogFilter{RunID: other.ID}, []int{9000}},
		{"by op", WorkLogFilter{OP: 7027}, []int{7027, 7027}},
		{"by date", WorkLogFilter{Date: "25-04-04"}, []int{7028, 7027}},
		{"by operator substring", WorkLogFilter{Operator: "perez"}, []int{7027}},
		{"by team", WorkLogFilter{Team: "31"}, []int{7027}},
		{"combined", WorkLogFilter{OP: 7027, Date: "25-04-03"}, []int{7027}},
		{"no match", WorkLogFilter{OP: 1}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Find(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ops(got))
		})
	}
}

func TestWorkLogRepo_RejectsUnknownRun(t *testing.T) {
	_, repo, _ := workLogTestSetup(t)

	_, err := repo.CreateBatch(context.Background(), "missing-run", []domain.WorkLog{testutil.NewTestWorkLog(1)})
	assert.Error(t, err)
}
