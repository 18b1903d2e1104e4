package extraction

import (
	"context"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/importer"
	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/sheet"
)

// Recorded replays canned service responses keyed by sheet name. Responses
// go through the same parsing as live ones, so fixtures can carry fences
// and prose.
type Recorded struct {
	Responses map[string]string
	Errs      map[string]error

	// Calls lists the sheet names seen, in call order.
	Calls []string
}

func (r *Recorded) Extract(ctx context.Context, s sheet.Sheet) ([]importer.RawCandidate, error) {
	r.Calls = append(r.Calls, s.Name)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := r.Errs[s.Name]; ok {
		return nil, err
	}
	text, ok := r.Responses[s.Name]
	if !ok {
		return nil, nil
	}
	return ParseCandidates(text, s.Name, nil)
}
