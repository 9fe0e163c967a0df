package node

import (
	"github.com/zclconf/go-cty/cty"
)

// Definition is the explicit registration record for one computation unit:
// the output name it produces, the output's type, its typed parameters, and
// the function that computes it. Definitions are what callers hand to the
// graph; Nodes are what the graph builds from them.
type Definition struct {
	Name    string
	Type    cty.Type
	Params  []Parameter
	Compute ComputeFunc
}

// Option configures a Definition during construction.
type Option func(*Definition)

// NewDefinition builds a unit definition, applying any provided options.
func NewDefinition(name string, typ cty.Type, fn ComputeFunc, options ...Option) Definition {
	def := Definition{
		Name:    name,
		Type:    typ,
		Compute: fn,
	}
	for _, opt := range options {
		opt(&def)
	}
	return def
}

// WithParam declares a required parameter.
func WithParam(name string, typ cty.Type) Option {
	return func(d *Definition) {
		d.Params = append(d.Params, Parameter{Name: name, Type: typ})
	}
}

// WithOptionalParam declares a parameter with a default value, making it
// optional.
func WithOptionalParam(name string, typ cty.Type, defaultValue cty.Value) Option {
	return func(d *Definition) {
		d.Params = append(d.Params, Parameter{Name: name, Type: typ, Default: &defaultValue})
	}
}
