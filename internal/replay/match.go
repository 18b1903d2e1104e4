package replay

import (
	"fmt"
	"strings"
)

// Match returns the index of the first option whose label contains target,
// ignoring case and surrounding space. Options are scanned in presentation
// order so ties always resolve to the earliest label.
func Match(target string, options []string) (int, error) {
	needle := strings.ToLower(strings.TrimSpace(target))
	if needle == "" {
		return -1, ErrEmptyTarget
	}
	for i, label := range options {
		if strings.Contains(strings.ToLower(strings.TrimSpace(label)), needle) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q among %d options", ErrNoMatch, target, len(options))
}
