// Package options resolves the option sets that choice fields reference. The
// CMS owns the data; the library only reads ordered option values through the
// Provider seam.
package options

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formblocks/pkg/fields"
)

// Provider supplies the ordered option values for a configured option set.
type Provider interface {
	OptionSet(ctx context.Context, id string) ([]fields.Option, error)
}

// Static is a map-backed Provider for tests and small deployments.
type Static map[string][]fields.Option

// OptionSet returns the configured options for id.
func (s Static) OptionSet(_ context.Context, id string) ([]fields.Option, error) {
	opts, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("options: option set %q not found", id)
	}
	out := make([]fields.Option, len(opts))
	copy(out, opts)
	return out, nil
}
