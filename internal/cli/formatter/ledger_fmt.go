package formatter

import (
	"strconv"
	"strings"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
)

// FormatRunList renders the run ledger, newest first as given.
func FormatRunList(runs []*domain.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			TruncID(r.ID),
			Timestamp(r.CreatedAt),
			Bold(r.Stats.Operator),
			strconv.Itoa(r.Stats.Records),
			r.Stats.TotalHours.String(),
			Dim(Truncate(r.SourcePath, 48)),
		})
	}
	table := RenderTable([]string{"ID", "CREATED", "OPERATOR", "RECORDS", "HOURS", "SOURCE"}, rows, 3, 4)
	return RenderBox("Runs", table)
}

// FormatRecordList renders stored work logs with their run and position.
func FormatRecordList(logs []domain.StoredWorkLog) string {
	rows := make([][]string, 0, len(logs))
	var total domain.Hours
	for _, l := range logs {
		row := workLogRow(strconv.Itoa(l.Seq), l.Log)
		rows = append(rows, append([]string{TruncID(l.RunID)}, row...))
		total += l.Log.OrdinaryHours
	}
	headers := append([]string{"RUN"}, workLogHeaders("SEQ")...)

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows, 1, 6, 7))
	b.WriteString("\n" + Dim(strconv.Itoa(len(logs))+" records, ") + FormatHours(total) + "\n")
	return RenderBox("Records", b.String())
}

// FormatRunDetail renders one run's statistics and any replay outcomes.
func FormatRunDetail(run *domain.Run, results []domain.ReplayResult) string {
	var b strings.Builder
	b.WriteString(KeyValues([][2]string{
		{"Source", run.SourcePath},
		{"Created", Timestamp(run.CreatedAt)},
	}))
	b.WriteString(FormatRunStats(run))

	if len(results) > 0 {
		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{
				strconv.Itoa(r.Seq),
				OutcomePill(r.Status),
				r.Field,
				Dim(strings.Join(r.Completed, ",")),
				Truncate(r.Error, 60),
			})
		}
		b.WriteString("\n" + Header("Replay outcomes") + "\n")
		b.WriteString(RenderTable([]string{"SEQ", "STATUS", "FIELD", "COMPLETED", "ERROR"}, rows, 0))
	}
	return RenderBox("Run", b.String())
}
