package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/kemaleren/hamilton/internal/registry"
)

// testModule registers handlers matching the declarations written by
// writeDecls.
type testModule struct{}

func (testModule) Register(r *registry.Registry) {
	r.RegisterFunc("doubled", func(ctx context.Context, inputs map[string]cty.Value) (cty.Value, error) {
		return inputs["base"].Multiply(cty.NumberIntVal(2)), nil
	})
	r.RegisterFunc("labelled", func(ctx context.Context, inputs map[string]cty.Value) (cty.Value, error) {
		return cty.StringVal(inputs["label"].AsString()), nil
	})
}

func writeDecls(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := `
		func "doubled" {
			returns = number
			input "base" {
				type = number
			}
		}

		func "labelled" {
			returns = string
			input "label" {
				type    = string
				default = "none"
			}
		}
	`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "decls.hcl"), []byte(src), 0o644))
	return dir
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	var logs bytes.Buffer
	config, err := NewConfig(cfg)
	require.NoError(t, err)
	a, err := NewApp(&out, &logs, config, testModule{})
	require.NoError(t, err)
	return a, &out
}

func TestAppRun(t *testing.T) {
	t.Run("executes and writes the result as JSON", func(t *testing.T) {
		a, out := newTestApp(t, Config{
			ModulesPath: writeDecls(t),
			Outputs:     []string{"doubled", "labelled"},
			Inputs:      map[string]cty.Value{"base": cty.NumberIntVal(21)},
		})
		require.NoError(t, a.Run(context.Background()))

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, float64(42), result["doubled"])
		assert.Equal(t, "none", result["labelled"])
	})

	t.Run("static config satisfies leaf inputs", func(t *testing.T) {
		declsDir := writeDecls(t)
		configPath := filepath.Join(t.TempDir(), "config.hcl")
		require.NoError(t, os.WriteFile(configPath, []byte(`base = 5`), 0o644))

		a, out := newTestApp(t, Config{
			ModulesPath: declsDir,
			ConfigPath:  configPath,
			Outputs:     []string{"doubled"},
		})
		require.NoError(t, a.Run(context.Background()))
		assert.JSONEq(t, `{"doubled": 10}`, out.String())
	})

	t.Run("missing required input surfaces the validation error", func(t *testing.T) {
		a, _ := newTestApp(t, Config{
			ModulesPath: writeDecls(t),
			Outputs:     []string{"doubled"},
		})
		err := a.Run(context.Background())
		require.Error(t, err)
		assert.ErrorContains(t, err, `required input "base" not provided for nodes: doubled`)
	})

	t.Run("list mode prints every variable with its type", func(t *testing.T) {
		a, out := newTestApp(t, Config{
			ModulesPath: writeDecls(t),
			List:        true,
		})
		require.NoError(t, a.Run(context.Background()))

		assert.Contains(t, out.String(), "doubled\tnumber")
		assert.Contains(t, out.String(), "base\tnumber")
		assert.Contains(t, out.String(), "labelled\tstring")
	})

	t.Run("cycle check mode reports acyclic closures", func(t *testing.T) {
		a, out := newTestApp(t, Config{
			ModulesPath: writeDecls(t),
			Outputs:     []string{"doubled"},
			CheckCycles: true,
		})
		require.NoError(t, a.Run(context.Background()))
		assert.Equal(t, "hasCycles = false\n", out.String())
	})
}

func TestNewApp(t *testing.T) {
	t.Run("registry parity failure aborts startup", func(t *testing.T) {
		dir := t.TempDir()
		src := `
			func "orphan" {
				returns = number
			}
		`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "decls.hcl"), []byte(src), 0o644))

		config, err := NewConfig(Config{ModulesPath: dir, Outputs: []string{"orphan"}})
		require.NoError(t, err)

		var out, logs bytes.Buffer
		_, err = NewApp(&out, &logs, config, testModule{})
		require.Error(t, err)
		assert.ErrorContains(t, err, "registry validation failed")
		assert.ErrorContains(t, err, "func 'orphan': declared in a manifest, but no Go handler is registered")
	})
}
