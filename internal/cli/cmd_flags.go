package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// addStoreFlag registers the shared --store scope flag with the configured
// store code as default.
func addStoreFlag(fs *pflag.FlagSet, store *string, def string) {
	fs.StringVar(store, "store", def, "Store code to scope the operation to")
}

// resolveID matches user input against a list of record identities: exact
// match first, then unique prefix.
func resolveID(ids []string, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("ID is required")
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
