package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/kemaleren/hamilton/internal/ctxlog"
	"github.com/kemaleren/hamilton/internal/node"
)

// ErrCyclicGraph is returned when execution is attempted over a closure that
// contains a dependency cycle.
var ErrCyclicGraph = errors.New("cyclic dependency detected in execution graph")

// Execute evaluates the given node subset depth-first, populating memo. For
// each node: an override value is taken verbatim and its compute skipped; an
// external input reads from the combined config and runtime inputs; any
// other node gathers its parameter values from memo and invokes its compute
// function exactly once. Each name is written to memo at most once per call.
//
// The closure is checked for cycles up front so a malformed request fails
// cleanly instead of recursing forever.
func (g *Graph) Execute(ctx context.Context, nodes []*node.Node, memo map[string]cty.Value, overrides, inputs map[string]cty.Value) error {
	logger := ctxlog.FromContext(ctx)

	combined, err := CombineConfigAndInputs(g.config, inputs)
	if err != nil {
		return err
	}
	if g.HasCycles(nodes) {
		return ErrCyclicGraph
	}

	var eval func(n *node.Node) error
	eval = func(n *node.Node) error {
		if _, ok := memo[n.Name]; ok {
			return nil
		}
		if v, ok := overrides[n.Name]; ok {
			logger.Debug("Using override value, skipping compute.", "node", n.Name)
			memo[n.Name] = v
			return nil
		}
		if n.IsExternal() {
			v, ok := combined[n.Name]
			if !ok {
				// Absent external input. Dependents that declared it
				// optional fall back to their own defaults; dependents that
				// require it fail at their own evaluation below.
				return nil
			}
			memo[n.Name] = v
			return nil
		}

		args := make(map[string]cty.Value, len(n.Params))
		for _, p := range n.Params {
			if err := eval(g.nodes[p.Name]); err != nil {
				return err
			}
			if v, ok := memo[p.Name]; ok {
				args[p.Name] = v
				continue
			}
			if p.Default != nil {
				args[p.Name] = *p.Default
				continue
			}
			return fmt.Errorf("no value available for required input %q of node %q", p.Name, n.Name)
		}

		logger.Debug("Computing node.", "node", n.Name)
		v, err := n.Compute(ctx, args)
		if err != nil {
			return fmt.Errorf("computing %q: %w", n.Name, err)
		}
		memo[n.Name] = v
		return nil
	}

	for _, n := range nodes {
		if err := eval(n); err != nil {
			return err
		}
	}
	return nil
}
