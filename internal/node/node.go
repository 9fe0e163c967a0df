package node

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// ComputeFunc produces a node's output value from its named parameter values.
// Implementations must be pure: no mutation of shared state, and the same
// inputs always yield the same output. Memoization depends on this.
type ComputeFunc func(ctx context.Context, inputs map[string]cty.Value) (cty.Value, error)

// Parameter declares one named, typed input of a computation unit.
type Parameter struct {
	// Name is matched against other units' output names to form graph edges.
	// A name that matches no unit becomes an external input.
	Name string

	// Type is the value type this parameter expects.
	Type cty.Type

	// Default is the value used when the parameter is not supplied. A nil
	// Default marks the parameter as required.
	Default *cty.Value
}

// Required reports whether the parameter must be satisfied by an upstream
// node, configuration, or a runtime input.
func (p Parameter) Required() bool {
	return p.Default == nil
}

// Node is a single vertex in the dataflow graph. A node either computes its
// value from its parameters or, when Compute is nil, stands in for an
// external input supplied via configuration, runtime inputs, or overrides.
type Node struct {
	// Name uniquely identifies the node within a graph and doubles as the
	// name of the output it produces.
	Name string

	// Type is the declared type of the node's output. It is used for
	// compatibility checking of externally supplied values, never for
	// dispatch.
	Type cty.Type

	// Params lists the node's inputs in declaration order.
	Params []Parameter

	// Compute produces the node's value. Nil for external inputs.
	Compute ComputeFunc

	// DependedOnBy indexes every node whose parameter list names this node.
	// It is derived at graph construction and used for validation only.
	DependedOnBy []*Node
}

// IsExternal reports whether the node's value must come from configuration,
// runtime inputs, or overrides rather than from computation.
func (n *Node) IsExternal() bool {
	return n.Compute == nil
}

// Param returns the declaration of the named parameter, if present.
func (n *Node) Param(name string) (Parameter, bool) {
	for _, p := range n.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}
