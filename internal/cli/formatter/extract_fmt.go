package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
)

// PreviewRows is how many records the extraction summary lists.
const PreviewRows = 5

const activityWidth = 40

// FormatExtraction renders a run's statistics followed by a preview of its
// first records.
func FormatExtraction(run *domain.Run, records []domain.WorkLog) string {
	var b strings.Builder
	b.WriteString(FormatRunStats(run))
	b.WriteString("\n")
	b.WriteString(Header("Preview"))
	b.WriteString("\n")
	b.WriteString(FormatRecordPreview(records, PreviewRows))
	return RenderBox("Extraction", b.String())
}

// FormatRunStats renders the statistics block of a run.
func FormatRunStats(run *domain.Run) string {
	s := run.Stats
	dates := Dim("--")
	if n := len(s.Dates); n > 0 {
		dates = fmt.Sprintf("%d (%s .. %s)", n, s.Dates[0], s.Dates[n-1])
	}
	sheets := fmt.Sprintf("%d found, %d read, %s",
		s.SheetsFound, s.SheetsRead, CountStyled(s.SheetsSkipped, "skipped", StyleYellow))

	return KeyValues([][2]string{
		{"Run", TruncID(run.ID)},
		{"Operator", Bold(s.Operator)},
		{"Team", run.Team},
		{"Records", strconv.Itoa(s.Records)},
		{"Distinct OPs", strconv.Itoa(s.DistinctOPs)},
		{"Total hours", FormatHours(s.TotalHours)},
		{"Dates", dates},
		{"Sheets", sheets},
		{"Candidates", strconv.Itoa(s.Candidates)},
		{"Rejected", CountStyled(s.Rejected, "records", StyleRed)},
		{"Record file", run.RecordFile},
	})
}

// FormatRecordPreview renders up to limit records as a table, noting how
// many were left out.
func FormatRecordPreview(records []domain.WorkLog, limit int) string {
	shown := records
	if limit >= 0 && len(records) > limit {
		shown = records[:limit]
	}
	rows := make([][]string, 0, len(shown))
	for i, r := range shown {
		rows = append(rows, workLogRow(strconv.Itoa(i+1), r))
	}

	var b strings.Builder
	b.WriteString(RenderTable(workLogHeaders("#"), rows, 0, 5, 6))
	if rest := len(records) - len(shown); rest > 0 {
		b.WriteString(Dim(fmt.Sprintf("... and %d more records", rest)) + "\n")
	}
	return b.String()
}

func workLogHeaders(first string) []string {
	return []string{first, "DATE", "OP", "OPERATOR", "ACTIVITY", "HOURS", "EXTRA", "TEAM"}
}

func workLogRow(first string, r domain.WorkLog) []string {
	extra := Dim("-")
	if r.HasOvertime() {
		extra = r.OvertimeHours.String()
	}
	return []string{
		first,
		r.Date,
		strconv.Itoa(r.OP),
		r.Operator,
		Truncate(r.Activity, activityWidth),
		r.OrdinaryHours.String(),
		extra,
		r.Team,
	}
}
