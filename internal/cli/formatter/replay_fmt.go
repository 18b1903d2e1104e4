package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/replay"
)

const replayBarWidth = 20

// FormatReplayReport renders the outcome of a replay: totals, a progress
// bar and one line per record that did not make it.
func FormatReplayReport(rng replay.DateRange, report *replay.Report) string {
	var b strings.Builder

	state := StyleGreen.Render(report.FinalState.String())
	if report.FinalState == replay.Failed {
		state = StyleRed.Render(report.FinalState.String())
	}
	counts := fmt.Sprintf("%s, %s, %s",
		CountStyled(report.Replayed, "replayed", StyleGreen),
		CountStyled(report.Failed, "failed", StyleRed),
		CountStyled(report.Skipped, "skipped", StyleYellow))

	b.WriteString(KeyValues([][2]string{
		{"Range", fmt.Sprintf("%s .. %s", rng.From, rng.To)},
		{"Progress", RenderProgress(report.Replayed, report.Total, replayBarWidth)},
		{"Outcome", counts},
		{"State", state},
	}))
	if report.Halted {
		b.WriteString("\n" + StyleYellow.Render("Halted on request; remaining records were not sent.") + "\n")
	}

	var rows [][]string
	for _, o := range report.Outcomes {
		if o.Err == nil {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(o.Index + 1),
			strconv.Itoa(o.Record.OP),
			o.Record.Date,
			o.Err.Field,
			Dim(strings.Join(o.Err.Completed, ",")),
			StyleRed.Render(Truncate(o.Err.Err.Error(), 60)),
		})
	}
	if len(rows) > 0 {
		b.WriteString("\n" + Header("Failures") + "\n")
		b.WriteString(RenderTable([]string{"#", "OP", "DATE", "FIELD", "COMPLETED", "ERROR"}, rows, 0))
	}
	return RenderBox("Replay", b.String())
}

// FormatPlan renders the fill steps of a dry run.
func FormatPlan(rng replay.DateRange, plans []replay.RecordPlan) string {
	var b strings.Builder
	b.WriteString(KeyValues([][2]string{
		{"Range", fmt.Sprintf("%s .. %s", rng.From, rng.To)},
		{"Records", strconv.Itoa(len(plans))},
	}))
	for _, p := range plans {
		b.WriteString("\n")
		b.WriteString(Bold(fmt.Sprintf("#%d  OP %d  %s", p.Index+1, p.Record.OP, p.Record.Date)) + "\n")
		rows := make([][]string, 0, len(p.Steps))
		for _, st := range p.Steps {
			rows = append(rows, []string{st.Field, Dim(st.Control.String()), st.Action.String(), st.Value})
		}
		b.WriteString(RenderTable([]string{"FIELD", "CONTROL", "ACTION", "VALUE"}, rows))
	}
	return RenderBox("Dry run", b.String())
}
