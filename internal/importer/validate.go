package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"go.uber.org/zap"
)

// Validator turns provisional records into canonical ones, repairing the
// fields that have a safe default and rejecting the rest.
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a Validator that reports repairs to logger.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Validate checks one provisional record. The returned error is always a
// *Rejection; a rejected record is never partially returned.
func (v *Validator) Validate(p Provisional) (domain.WorkLog, error) {
	op, err := strconv.Atoi(strings.TrimSpace(p.OP))
	if err != nil || op <= 0 {
		return domain.WorkLog{}, reject("OP", p.OP, "not a positive integer")
	}

	if _, err := time.Parse(domain.DateLayout, p.Date); err != nil {
		return domain.WorkLog{}, reject("fecha", p.Date, "not a YY-MM-DD date")
	}

	operator := strings.TrimSpace(p.Operator)
	if operator == "" {
		return domain.WorkLog{}, reject("operario", p.Operator, "empty")
	}
	activity := strings.TrimSpace(p.Activity)
	if activity == "" {
		return domain.WorkLog{}, reject("actividad", p.Activity, "empty")
	}
	team := strings.TrimSpace(p.Team)
	if team == "" {
		return domain.WorkLog{}, reject("equipo", p.Team, "empty")
	}

	ordinary := v.repairOrdinary(op, p.OrdinaryHours)

	overtime := domain.Hours(0)
	if p.OvertimeHours != nil && strings.TrimSpace(*p.OvertimeHours) != "" {
		overtime, err = domain.ParseHours(*p.OvertimeHours)
		if err != nil {
			return domain.WorkLog{}, reject("tiempo_extra", *p.OvertimeHours, "not a decimal")
		}
		if overtime < 0 {
			return domain.WorkLog{}, reject("tiempo_extra", *p.OvertimeHours, "negative")
		}
	}

	return domain.WorkLog{
		Date:          p.Date,
		OP:            op,
		Operator:      operator,
		Activity:      activity,
		OrdinaryHours: ordinary,
		OvertimeHours: overtime,
		Team:          team,
	}, nil
}

// ValidateGroup validates every record of a group. Any rejection rejects the
// group, and a compound group must still add up to its shared total.
func (v *Validator) ValidateGroup(g Group) ([]domain.WorkLog, error) {
	out := make([]domain.WorkLog, 0, len(g.Records))
	var sum domain.Hours
	for _, p := range g.Records {
		rec, err := v.Validate(p)
		if err != nil {
			return nil, err
		}
		sum += rec.OrdinaryHours
		out = append(out, rec)
	}
	if g.Compound && sum != g.Total {
		return nil, reject("tiempo_ordinario", sum.String(),
			fmt.Sprintf("shares do not add up to %sh", g.Total))
	}
	return out, nil
}

// repairOrdinary parses ordinary hours, snapping to the nearest half-hour
// with a floor of 0.5. Unreadable values fall back to 0.5.
func (v *Validator) repairOrdinary(op int, s string) domain.Hours {
	h, err := domain.ParseHours(s)
	if err != nil {
		v.logger.Warn("repairing unreadable ordinary hours",
			zap.Int("op", op), zap.String("value", s), zap.String("repaired", domain.HalfHour.String()))
		return domain.HalfHour
	}
	rounded := h.RoundHalf()
	if rounded < domain.HalfHour {
		rounded = domain.HalfHour
	}
	if rounded != h {
		v.logger.Warn("rounding ordinary hours to half-hour",
			zap.Int("op", op), zap.String("value", s), zap.String("repaired", rounded.String()))
	}
	return rounded
}
