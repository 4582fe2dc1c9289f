package cmd

import (
	"fmt"
	"strings"

	"github.com/XY-Finance/callforge/internal/builder"
	"github.com/XY-Finance/callforge/internal/session"
)

// loadSession returns the call in progress and the store to save it back to.
func loadSession() (*builder.Call, *session.Store, error) {
	store := session.NewStore(cfg.Dir())
	call, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return call, store, nil
}

// parsePath turns a CLI path argument ("1a2b/3c4d") into a full identifier
// path, expanding unambiguous prefixes.
func parsePath(c *builder.Call, arg string) ([]string, error) {
	parts := strings.Split(strings.Trim(arg, "/"), "/")
	if len(parts) == 1 && parts[0] == "" {
		return nil, fmt.Errorf("empty path — use identifiers from `callforge show`")
	}
	path, err := c.ResolvePrefixes(parts)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", arg, err)
	}
	return path, nil
}

// displayPath renders a full identifier path in its short display form.
func displayPath(path []string) string {
	short := make([]string, len(path))
	for i, id := range path {
		short[i] = builder.ShortID(id)
	}
	return strings.Join(short, "/")
}
