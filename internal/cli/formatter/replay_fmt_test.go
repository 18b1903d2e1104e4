package formatter

import (
	"testing"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/replay"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReplayReport(t *testing.T) {
	rec := testutil.NewTestWorkLog(7028)
	report := &replay.Report{
		Total:    3,
		Replayed: 2,
		Failed:   1,
		Outcomes: []replay.Outcome{
			{Index: 0, Status: domain.ReplayReplayed},
			{Index: 1, Record: rec, Status: domain.ReplayFailed, Err: &replay.FieldError{
				Field:     replay.CtlOperator,
				Completed: []string{replay.CtlDate, replay.CtlOP},
				Err:       replay.ErrNoMatch,
			}},
			{Index: 2, Status: domain.ReplayReplayed},
		},
		FinalState: replay.Done,
	}

	out := FormatReplayReport(replay.DateRange{From: "2025-03-31", To: "2025-05-23"}, report)

	assert.Contains(t, out, "2025-03-31 .. 2025-05-23")
	assert.Contains(t, out, "2/3")
	assert.Contains(t, out, "2 replayed")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "FAILURES")
	assert.Contains(t, out, "operator")
	assert.Contains(t, out, "date,op")
	assert.Contains(t, out, "no option matches")
	assert.NotContains(t, out, "Halted")
}

func TestFormatReplayReport_Halted(t *testing.T) {
	report := &replay.Report{Total: 2, Skipped: 2, Halted: true, FinalState: replay.Done}

	out := FormatReplayReport(replay.DateRange{}, report)

	assert.Contains(t, out, "Halted on request")
	assert.NotContains(t, out, "FAILURES")
}

func TestFormatPlan(t *testing.T) {
	plans, err := replay.Plan(replay.DefaultFormSpec(), []domain.WorkLog{testutil.NewTestWorkLog(7027)})
	require.NoError(t, err)

	out := FormatPlan(replay.DateRange{From: "2025-04-03", To: "2025-04-03"}, plans)

	assert.Contains(t, out, "#1  OP 7027  25-04-03")
	assert.Contains(t, out, "name=cboOPF")
	assert.Contains(t, out, "select")
	assert.Contains(t, out, "Nelson Rangel")
}

func TestRenderProgress(t *testing.T) {
	assert.Contains(t, RenderProgress(0, 0, 10), "0/0")
	assert.Contains(t, RenderProgress(4, 4, 4), filledBlock+filledBlock+filledBlock+filledBlock)
	assert.Contains(t, RenderProgress(0, 4, 4), emptyBlock+emptyBlock+emptyBlock+emptyBlock)
}
