package graph

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/kemaleren/hamilton/internal/node"
)

// UpstreamNodes computes the minimal upstream closure for the requested
// output names: the requested nodes plus everything transitively needed to
// satisfy a required parameter of an included node, stopping at external
// inputs. An optional dependency is pulled into the closure only when its
// value is actually obtainable, either because a unit computes it or because
// config or the provisional runtime inputs supply it; otherwise the
// consumer's own default applies and the dependency is left out.
//
// It returns the closure and the subset of it whose values must come from
// outside the graph (external inputs reached by the traversal, including any
// requested name that is itself external). Both slices are in deterministic
// traversal order; callers treat them as sets.
func (g *Graph) UpstreamNodes(finalVars []string, inputs map[string]cty.Value) (required, userSupplied []*node.Node, err error) {
	visited := make(map[string]bool, len(g.nodes))

	var visit func(n *node.Node)
	visit = func(n *node.Node) {
		if visited[n.Name] {
			return
		}
		visited[n.Name] = true
		required = append(required, n)
		if n.IsExternal() {
			userSupplied = append(userSupplied, n)
			return
		}
		for _, p := range n.Params {
			dep := g.nodes[p.Name]
			if p.Required() || !dep.IsExternal() || g.valueAvailable(dep.Name, inputs) {
				visit(dep)
			}
		}
	}

	for _, name := range finalVars {
		n, ok := g.nodes[name]
		if !ok {
			return nil, nil, fmt.Errorf("unknown output %q requested", name)
		}
		visit(n)
	}
	return required, userSupplied, nil
}

// valueAvailable reports whether an external input's value is supplied by
// config or the given runtime inputs.
func (g *Graph) valueAvailable(name string, inputs map[string]cty.Value) bool {
	if _, ok := g.config[name]; ok {
		return true
	}
	_, ok := inputs[name]
	return ok
}
