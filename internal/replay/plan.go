package replay

import (
	"fmt"
	"strconv"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
)

// Action is what a step does to its control.
type Action int

const (
	ActionFill Action = iota
	ActionSelect
)

func (a Action) String() string {
	if a == ActionSelect {
		return "select"
	}
	return "fill"
}

// Step is one control write for a record. For ActionSelect, Value is the
// match target rather than the option label.
type Step struct {
	Field   string
	Control Control
	Action  Action
	Value   string
}

// RecordSteps lays out the fixed field order for one record: date, OP,
// operator, activity, ordinary hours, overtime (only when non-zero), team.
func RecordSteps(form FormSpec, rec domain.WorkLog) ([]Step, error) {
	type field struct {
		name   string
		action Action
		value  string
	}
	fields := []field{
		{CtlDate, ActionFill, rec.Date},
		{CtlOP, ActionSelect, strconv.Itoa(rec.OP)},
		{CtlOperator, ActionSelect, rec.Operator},
		{CtlActivity, ActionFill, rec.Activity},
		{CtlOrdinaryHours, ActionFill, rec.OrdinaryHours.String()},
	}
	if rec.HasOvertime() {
		fields = append(fields, field{CtlOvertimeHours, ActionFill, rec.OvertimeHours.String()})
	}
	fields = append(fields, field{CtlTeam, ActionSelect, rec.Team})

	steps := make([]Step, 0, len(fields))
	for _, f := range fields {
		c, err := form.Control(f.name)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Field: f.name, Control: c, Action: f.action, Value: f.value})
	}
	return steps, nil
}

// RecordPlan is the dry-run view of one record.
type RecordPlan struct {
	Index  int
	Record domain.WorkLog
	Steps  []Step
}

// Plan lays out every record's steps without touching a session.
func Plan(form FormSpec, records []domain.WorkLog) ([]RecordPlan, error) {
	plans := make([]RecordPlan, 0, len(records))
	for i, rec := range records {
		steps, err := RecordSteps(form, rec)
		if err != nil {
			return nil, err
		}
		plans = append(plans, RecordPlan{Index: i, Record: rec, Steps: steps})
	}
	return plans, nil
}

// DateRange bounds the report section, as YYYY-MM-DD.
type DateRange struct {
	From string
	To   string
}

const rangeLayout = "2006-01-02"

// RangeFor spans the earliest to the latest record date.
func RangeFor(records []domain.WorkLog) (DateRange, error) {
	if len(records) == 0 {
		return DateRange{}, fmt.Errorf("no records to derive a date range from")
	}
	var rng DateRange
	for i, rec := range records {
		day, err := rec.Day()
		if err != nil {
			return DateRange{}, err
		}
		s := day.Format(rangeLayout)
		if i == 0 || s < rng.From {
			rng.From = s
		}
		if i == 0 || s > rng.To {
			rng.To = s
		}
	}
	return rng, nil
}
