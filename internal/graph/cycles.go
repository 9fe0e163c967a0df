package graph

import "github.com/kemaleren/hamilton/internal/node"

// visit colors for depth-first cycle detection.
type color int

const (
	unvisited color = iota
	inProgress
	done
)

// HasCycles reports whether the dependency relation restricted to the given
// node subset contains a cycle. It uses the classic three-color depth-first
// search: reaching a node that is still in the current recursion stack means
// a back-edge, and therefore a cycle.
func (g *Graph) HasCycles(nodes []*node.Node) bool {
	inSubset := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		inSubset[n.Name] = true
	}

	colors := make(map[string]color, len(nodes))

	var visit func(n *node.Node) bool
	visit = func(n *node.Node) bool {
		colors[n.Name] = inProgress
		for _, p := range n.Params {
			dep, ok := g.nodes[p.Name]
			if !ok || !inSubset[dep.Name] {
				continue
			}
			switch colors[dep.Name] {
			case inProgress:
				return true
			case unvisited:
				if visit(dep) {
					return true
				}
			}
		}
		colors[n.Name] = done
		return false
	}

	for _, n := range nodes {
		if colors[n.Name] == unvisited && visit(n) {
			return true
		}
	}
	return false
}
