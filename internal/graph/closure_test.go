package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/kemaleren/hamilton/internal/node"
)

// optDef returns a definition that forwards one optional parameter.
func optDef(name, param string, defaultValue cty.Value) node.Definition {
	return node.NewDefinition(name, cty.Number,
		func(ctx context.Context, inputs map[string]cty.Value) (cty.Value, error) {
			return inputs[param], nil
		},
		node.WithOptionalParam(param, cty.Number, defaultValue))
}

func names(nodes []*node.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestUpstreamNodes(t *testing.T) {
	t.Run("minimal closure excludes unrelated nodes", func(t *testing.T) {
		g, err := New([]node.Definition{
			constDef("a", cty.NumberIntVal(1)),
			passDef("b", "a"),
			passDef("c", "b"),
			constDef("d", cty.NumberIntVal(4)),
		}, nil)
		require.NoError(t, err)

		required, userSupplied, err := g.UpstreamNodes([]string{"c"}, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, names(required))
		assert.Empty(t, userSupplied)
	})

	t.Run("external inputs reached by the traversal are user supplied", func(t *testing.T) {
		g, err := New([]node.Definition{
			passDef("b", "raw"),
			passDef("c", "b"),
		}, nil)
		require.NoError(t, err)

		required, userSupplied, err := g.UpstreamNodes([]string{"c"}, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"raw", "b", "c"}, names(required))
		assert.Equal(t, []string{"raw"}, names(userSupplied))
	})

	t.Run("requested name that is itself external is user supplied", func(t *testing.T) {
		g, err := New([]node.Definition{passDef("b", "raw")}, nil)
		require.NoError(t, err)

		required, userSupplied, err := g.UpstreamNodes([]string{"raw"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"raw"}, names(required))
		assert.Equal(t, []string{"raw"}, names(userSupplied))
	})

	t.Run("unavailable optional external input stays out of the closure", func(t *testing.T) {
		g, err := New([]node.Definition{
			optDef("h", "opt", cty.NumberIntVal(5)),
		}, nil)
		require.NoError(t, err)

		required, userSupplied, err := g.UpstreamNodes([]string{"h"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"h"}, names(required))
		assert.Empty(t, userSupplied)
	})

	t.Run("optional external input joins the closure when supplied", func(t *testing.T) {
		g, err := New([]node.Definition{
			optDef("h", "opt", cty.NumberIntVal(5)),
		}, nil)
		require.NoError(t, err)

		inputs := map[string]cty.Value{"opt": cty.NumberIntVal(7)}
		required, userSupplied, err := g.UpstreamNodes([]string{"h"}, inputs)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"h", "opt"}, names(required))
		assert.Equal(t, []string{"opt"}, names(userSupplied))
	})

	t.Run("optional computable dependency is always included", func(t *testing.T) {
		g, err := New([]node.Definition{
			constDef("x", cty.NumberIntVal(1)),
			optDef("h", "x", cty.NumberIntVal(5)),
		}, nil)
		require.NoError(t, err)

		required, _, err := g.UpstreamNodes([]string{"h"}, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"h", "x"}, names(required))
	})

	t.Run("unknown output is an error", func(t *testing.T) {
		g, err := New([]node.Definition{constDef("a", cty.NumberIntVal(1))}, nil)
		require.NoError(t, err)

		_, _, err = g.UpstreamNodes([]string{"nope"}, nil)
		assert.ErrorContains(t, err, `unknown output "nope"`)
	})

	t.Run("terminates on cyclic graphs", func(t *testing.T) {
		g, err := New([]node.Definition{
			passDef("p", "q"),
			passDef("q", "p"),
		}, nil)
		require.NoError(t, err)

		required, _, err := g.UpstreamNodes([]string{"p"}, nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"p", "q"}, names(required))
	})
}
