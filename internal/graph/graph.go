package graph

import (
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/kemaleren/hamilton/internal/node"
)

// Graph owns the full node set and the static configuration. It is built
// once from a set of unit definitions and is immutable afterwards, so it may
// be shared read-only across concurrent execution calls.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by their output name.
	nodes map[string]*node.Node
	// order preserves a deterministic node ordering: defined units in
	// definition order, then synthesized external inputs in first-reference
	// order.
	order []string
	// config holds values fixed for the graph's lifetime.
	config map[string]cty.Value
}

// New constructs a graph from unit definitions and a static configuration
// mapping. Two definitions producing the same output name is a construction
// error. Parameter names that match no unit are synthesized as external
// input nodes.
func New(defs []node.Definition, config map[string]cty.Value) (*Graph, error) {
	g := &Graph{
		nodes:  make(map[string]*node.Node, len(defs)),
		config: make(map[string]cty.Value, len(config)),
	}
	maps.Copy(g.config, config)

	// First pass: create a node per definition.
	for _, def := range defs {
		if _, exists := g.nodes[def.Name]; exists {
			return nil, fmt.Errorf("duplicate output name %q: two units declare the same output", def.Name)
		}
		g.nodes[def.Name] = &node.Node{
			Name:    def.Name,
			Type:    def.Type,
			Params:  def.Params,
			Compute: def.Compute,
		}
		g.order = append(g.order, def.Name)
	}

	// Second pass: link parameters to the nodes that produce them,
	// synthesizing external input nodes for unmatched names, and populate
	// the derived DependedOnBy index.
	for _, def := range defs {
		n := g.nodes[def.Name]
		for _, p := range def.Params {
			dep, ok := g.nodes[p.Name]
			if !ok {
				dep = &node.Node{Name: p.Name, Type: p.Type}
				g.nodes[p.Name] = dep
				g.order = append(g.order, p.Name)
			} else if dep.IsExternal() && !dep.Type.Equals(p.Type) {
				// Two units disagree on an external input's type. Widen to
				// dynamic; each consumer still checks its own declared view.
				dep.Type = cty.DynamicPseudoType
			}
			dep.DependedOnBy = append(dep.DependedOnBy, n)
		}
	}

	return g, nil
}

// Node returns the named node, if present.
func (g *Graph) Node(name string) (*node.Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns every node in the graph in deterministic order.
func (g *Graph) Nodes() []*node.Node {
	out := make([]*node.Node, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.nodes[name])
	}
	return out
}

// Config returns the graph's static configuration mapping. Callers must not
// mutate it.
func (g *Graph) Config() map[string]cty.Value {
	return g.config
}

// RequiredByAnything reports whether at least one dependent declares its
// parameter on n as required. It decides whether the absence of an external
// value for n is an error: dependents that treat n as optional fall back to
// their own defaults.
func (g *Graph) RequiredByAnything(n *node.Node) bool {
	for _, dependent := range n.DependedOnBy {
		if p, ok := dependent.Param(n.Name); ok && p.Required() {
			return true
		}
	}
	return false
}

// CombineConfigAndInputs merges the static configuration with one call's
// runtime inputs. A key present in both is an ambiguous source of truth and
// is rejected rather than silently resolved.
func CombineConfigAndInputs(config, inputs map[string]cty.Value) (map[string]cty.Value, error) {
	var clashes []string
	for name := range inputs {
		if _, ok := config[name]; ok {
			clashes = append(clashes, name)
		}
	}
	if len(clashes) > 0 {
		sort.Strings(clashes)
		return nil, fmt.Errorf("keys present in both config and runtime inputs: %s", strings.Join(clashes, ", "))
	}

	combined := make(map[string]cty.Value, len(config)+len(inputs))
	maps.Copy(combined, config)
	maps.Copy(combined, inputs)
	return combined, nil
}
