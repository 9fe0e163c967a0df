// Package driver is the public-facing orchestration layer. A Driver owns one
// graph and one adapter, validates runtime inputs against the graph's
// requirements before every execution, and exposes execution, introspection,
// and pre-flight cycle-check entry points.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"

	"github.com/kemaleren/hamilton/internal/adapter"
	"github.com/kemaleren/hamilton/internal/ctxlog"
	"github.com/kemaleren/hamilton/internal/graph"
	"github.com/kemaleren/hamilton/internal/node"
)

// Variable is the external-facing projection of one node: its output name
// and declared type. Exposing this instead of the node itself keeps the
// engine's internals hidden from callers.
type Variable struct {
	Name string
	Type cty.Type
}

// Driver orchestrates building and executing the dataflow graph. It wraps
// exactly one graph and one adapter and is otherwise stateless: all per-call
// state lives inside a single Execute invocation.
type Driver struct {
	graph   *graph.Graph
	adapter adapter.Adapter
	logger  *slog.Logger
}

// New constructs a Driver from unit definitions and a static configuration
// mapping. A nil adapter falls back to the default cty adapter; a nil logger
// falls back to the process default.
func New(defs []node.Definition, config map[string]cty.Value, ad adapter.Adapter, logger *slog.Logger) (*Driver, error) {
	if ad == nil {
		ad = adapter.NewDefault()
	}
	if logger == nil {
		logger = slog.Default()
	}
	g, err := graph.New(defs, config)
	if err != nil {
		logger.Error("Failed to construct dataflow graph.", "error", err)
		return nil, err
	}
	return &Driver{graph: g, adapter: ad, logger: logger}, nil
}

// ValidateInputs checks one call's runtime inputs against the user-supplied
// node set of a closure: the inputs must not clash with the static config,
// every externally supplied value that some dependent requires must be
// present, and every present value must pass the adapter's type check. All
// violations are collected and reported together, sorted for determinism.
func (d *Driver) ValidateInputs(userSupplied []*node.Node, inputs map[string]cty.Value) error {
	combined, err := graph.CombineConfigAndInputs(d.graph.Config(), inputs)
	if err != nil {
		return err
	}

	var errs []string
	for _, n := range userSupplied {
		v, ok := combined[n.Name]
		if !ok {
			if d.graph.RequiredByAnything(n) {
				dependents := make([]string, 0, len(n.DependedOnBy))
				for _, dep := range n.DependedOnBy {
					dependents = append(dependents, dep.Name)
				}
				sort.Strings(dependents)
				errs = append(errs, fmt.Sprintf("required input %q not provided for nodes: %s", n.Name, strings.Join(dependents, ", ")))
			}
			continue
		}
		// Null is an explicit "no value" and carries no type information to
		// check against.
		if v.IsNull() {
			continue
		}
		if !d.adapter.CheckInputType(n.Type, v) {
			errs = append(errs, fmt.Sprintf("type mismatch for input %q: expected %s, got %s", n.Name, n.Type.FriendlyName(), v.Type().FriendlyName()))
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("%d validation errors encountered:\n  %s", len(errs), strings.Join(errs, "\n  "))
	}
	return nil
}

// Execute computes the requested outputs and hands them to the adapter to
// build the caller-facing result. Errors from validation, execution, or
// result building are logged and propagated, never swallowed.
func (d *Driver) Execute(ctx context.Context, finalVars []string, overrides, inputs map[string]cty.Value) (cty.Value, error) {
	outputs, err := d.RawExecute(ctx, finalVars, overrides, inputs)
	if err != nil {
		return cty.NilVal, err
	}
	result, err := d.adapter.BuildResult(outputs)
	if err != nil {
		d.logger.Error("Failed to build result from outputs.", "error", err)
		return cty.NilVal, err
	}
	return result, nil
}

// RawExecute does the meat of execution without result shaping: compute the
// upstream closure, validate inputs, run the memoized execution, and project
// exactly the requested outputs. The memo is created fresh per call and
// never escapes it.
func (d *Driver) RawExecute(ctx context.Context, finalVars []string, overrides, inputs map[string]cty.Value) (map[string]cty.Value, error) {
	logger := d.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Computing upstream closure.", "outputs", finalVars)

	required, userSupplied, err := d.graph.UpstreamNodes(finalVars, inputs)
	if err != nil {
		logger.Error("Failed to resolve requested outputs.", "error", err)
		return nil, err
	}
	if err := d.ValidateInputs(userSupplied, inputs); err != nil {
		logger.Error("Input validation failed.", "error", err)
		return nil, err
	}

	memo := make(map[string]cty.Value, len(required))
	if err := d.graph.Execute(ctx, required, memo, overrides, inputs); err != nil {
		logger.Error("Execution failed.", "error", err)
		return nil, err
	}

	outputs := make(map[string]cty.Value, len(finalVars))
	for _, name := range finalVars {
		v, ok := memo[name]
		if !ok {
			return nil, fmt.Errorf("requested output %q was not computed", name)
		}
		outputs[name] = v
	}
	return outputs, nil
}

// ListVariables returns the name and declared output type of every node in
// the graph, sorted by name. It is a read-only introspection projection.
func (d *Driver) ListVariables() []Variable {
	nodes := d.graph.Nodes()
	vars := make([]Variable, 0, len(nodes))
	for _, n := range nodes {
		vars = append(vars, Variable{Name: n.Name, Type: n.Type})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}

// HasCycles computes the upstream closure for the requested outputs and
// reports whether it contains a dependency cycle. Intended as a pre-flight
// check; the execution path also rejects cyclic closures.
func (d *Driver) HasCycles(finalVars []string) (bool, error) {
	required, _, err := d.graph.UpstreamNodes(finalVars, nil)
	if err != nil {
		return false, err
	}
	return d.graph.HasCycles(required), nil
}
