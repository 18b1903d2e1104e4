package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// requireOneOf fails unless at least one of the named flags was set.
func requireOneOf(fs *pflag.FlagSet, names ...string) error {
	for _, n := range names {
		if fs.Changed(n) {
			return nil
		}
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "--" + n
	}
	return fmt.Errorf("one of %s is required", strings.Join(quoted, " or "))
}

// stringOr returns the flag's value when it was set on the command line and
// fallback otherwise.
func stringOr(fs *pflag.FlagSet, name, fallback string) string {
	if fs.Changed(name) {
		v, err := fs.GetString(name)
		if err == nil {
			return v
		}
	}
	return fallback
}

// boolOr is stringOr for boolean flags.
func boolOr(fs *pflag.FlagSet, name string, fallback bool) bool {
	if fs.Changed(name) {
		v, err := fs.GetBool(name)
		if err == nil {
			return v
		}
	}
	return fallback
}
