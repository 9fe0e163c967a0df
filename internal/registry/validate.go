package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kemaleren/hamilton/internal/ctxlog"
)

// Validate performs a strict parity check between manifest declarations and
// registered Go handlers: every declared unit must have a handler, and every
// handler must be declared. All mismatches are collected and reported as one
// combined failure.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var errs []string
	for name := range r.funcs {
		if _, ok := r.handlers[name]; !ok {
			errs = append(errs, fmt.Sprintf("func '%s': declared in a manifest, but no Go handler is registered", name))
		}
	}
	for name := range r.handlers {
		if _, ok := r.funcs[name]; !ok {
			errs = append(errs, fmt.Sprintf("func '%s': Go handler registered, but no manifest declares it", name))
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry parity check passed.", "funcs", len(r.funcs))
	return nil
}
