package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/kemaleren/hamilton/internal/manifest"
	"github.com/kemaleren/hamilton/internal/node"
)

func noopCompute(ctx context.Context, inputs map[string]cty.Value) (cty.Value, error) {
	return cty.Zero, nil
}

func TestRegisterFunc(t *testing.T) {
	r := New()
	r.RegisterFunc("a", noopCompute)

	assert.Panics(t, func() {
		r.RegisterFunc("a", noopCompute)
	})
}

func TestAddDeclarations(t *testing.T) {
	r := New()
	err := r.AddDeclarations([]manifest.Func{{Name: "a", Returns: cty.Number}})
	require.NoError(t, err)

	err = r.AddDeclarations([]manifest.Func{{Name: "a", Returns: cty.String}})
	assert.ErrorContains(t, err, `duplicate declaration of func "a"`)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("matched declarations and handlers pass", func(t *testing.T) {
		r := New()
		r.RegisterFunc("a", noopCompute)
		require.NoError(t, r.AddDeclarations([]manifest.Func{{Name: "a", Returns: cty.Number}}))
		assert.NoError(t, r.Validate(ctx))
	})

	t.Run("mismatches in both directions are aggregated", func(t *testing.T) {
		r := New()
		r.RegisterFunc("code_only", noopCompute)
		require.NoError(t, r.AddDeclarations([]manifest.Func{{Name: "manifest_only", Returns: cty.Number}}))

		err := r.Validate(ctx)
		require.Error(t, err)
		assert.ErrorContains(t, err, "func 'manifest_only': declared in a manifest, but no Go handler is registered")
		assert.ErrorContains(t, err, "func 'code_only': Go handler registered, but no manifest declares it")
	})
}

func TestDefinitions(t *testing.T) {
	r := New()
	r.RegisterFunc("total", noopCompute)
	r.RegisterFunc("avg", noopCompute)

	def3 := cty.NumberIntVal(3)
	require.NoError(t, r.AddDeclarations([]manifest.Func{
		{
			Name:    "total",
			Returns: cty.Number,
			Inputs:  []manifest.Input{{Name: "spend", Type: cty.List(cty.Number)}},
		},
		{
			Name:    "avg",
			Returns: cty.Number,
			Inputs: []manifest.Input{
				{Name: "spend", Type: cty.List(cty.Number)},
				{Name: "window", Type: cty.Number, Default: &def3},
			},
		},
	}))
	require.NoError(t, r.Validate(context.Background()))

	defs := r.Definitions()
	require.Len(t, defs, 2)

	// Declaration order is preserved.
	assert.Equal(t, "total", defs[0].Name)
	assert.Equal(t, "avg", defs[1].Name)

	avg := defs[1]
	assert.True(t, avg.Type.Equals(cty.Number))
	require.NotNil(t, avg.Compute)
	require.Len(t, avg.Params, 2)
	assert.Equal(t, node.Parameter{Name: "spend", Type: cty.List(cty.Number)}, avg.Params[0])
	assert.False(t, avg.Params[1].Required())
}
