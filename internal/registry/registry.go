// Package registry provides the central "glue" between HCL declarations and
// Go code.
//
// The Registry stores mappings between the output names declared in
// manifests (e.g. "avg_spend") and the compiled Go functions implementing
// them. During application startup, the registry is populated from both
// sides and then validated to ensure declarations and code are perfectly in
// sync, preventing a wide class of runtime errors.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/kemaleren/hamilton/internal/manifest"
	"github.com/kemaleren/hamilton/internal/node"
)

// Module is the interface that handler bundles implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered compute handlers and the declarations loaded
// from manifests for a single application instance.
type Registry struct {
	handlers map[string]node.ComputeFunc
	funcs    map[string]manifest.Func
	// order preserves declaration order so graph construction is
	// deterministic.
	order []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		handlers: make(map[string]node.ComputeFunc),
		funcs:    make(map[string]manifest.Func),
	}
}

// RegisterFunc registers the Go function implementing the named unit.
// Registering the same name twice is a programmer error.
func (r *Registry) RegisterFunc(name string, fn node.ComputeFunc) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("compute handler with name '%s' already registered", name))
	}
	slog.Debug("Registering compute handler.", "name", name)
	r.handlers[name] = fn
}

// AddDeclarations records the manifest-declared units. A name declared twice
// across the loaded manifests is rejected.
func (r *Registry) AddDeclarations(funcs []manifest.Func) error {
	for _, fn := range funcs {
		if _, exists := r.funcs[fn.Name]; exists {
			return fmt.Errorf("duplicate declaration of func %q", fn.Name)
		}
		r.funcs[fn.Name] = fn
		r.order = append(r.order, fn.Name)
	}
	return nil
}

// Definitions merges declarations and handlers into the registration records
// the graph is built from, in declaration order. Validate must have passed
// first; an unmatched entry here indicates a bug.
func (r *Registry) Definitions() []node.Definition {
	defs := make([]node.Definition, 0, len(r.order))
	for _, name := range r.order {
		fn := r.funcs[name]
		def := node.Definition{
			Name:    fn.Name,
			Type:    fn.Returns,
			Compute: r.handlers[fn.Name],
		}
		for _, input := range fn.Inputs {
			def.Params = append(def.Params, node.Parameter{
				Name:    input.Name,
				Type:    input.Type,
				Default: input.Default,
			})
		}
		defs = append(defs, def)
	}
	return defs
}
