package domain

import "sort"

// UnknownOperator names a run whose records carry no operator.
const UnknownOperator = "desconocido"

// RunStats summarises one extraction run.
type RunStats struct {
	Operator      string   `json:"operario"`
	Records       int      `json:"total_registros"`
	DistinctOPs   int      `json:"ops_unicas"`
	TotalHours    Hours    `json:"tiempo_total"`
	Dates         []string `json:"fechas_procesadas"`
	SheetsFound   int      `json:"hojas_encontradas"`
	SheetsRead    int      `json:"hojas_procesadas"`
	SheetsSkipped int      `json:"hojas_omitidas"`
	Candidates    int      `json:"candidatos"`
	Rejected      int      `json:"rechazados"`
}

// ComputeStats derives the record-level figures from a canonical set. Sheet
// and rejection counters are left for the caller to fill in.
func ComputeStats(records []WorkLog) RunStats {
	stats := RunStats{
		Operator: UnknownOperator,
		Records:  len(records),
	}
	ops := make(map[int]struct{})
	dates := make(map[string]struct{})
	for i, r := range records {
		if i == 0 && r.Operator != "" {
			stats.Operator = r.Operator
		}
		ops[r.OP] = struct{}{}
		dates[r.Date] = struct{}{}
		stats.TotalHours += r.OrdinaryHours
	}
	stats.DistinctOPs = len(ops)
	stats.Dates = make([]string, 0, len(dates))
	for d := range dates {
		stats.Dates = append(stats.Dates, d)
	}
	sort.Strings(stats.Dates)
	return stats
}
