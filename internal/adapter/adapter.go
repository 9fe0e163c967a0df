// Package adapter defines the pluggable capability the engine consumes for
// type-checking externally supplied values and materializing requested
// outputs into a caller-facing result.
package adapter

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Adapter is implemented by result builders plugged into the driver. The
// engine treats both operations as opaque capabilities: CheckInputType is
// applied only to external, user-supplied values (never to internally
// computed ones), and BuildResult assembles the requested output set into
// whatever artifact the caller wants.
type Adapter interface {
	// CheckInputType reports whether value is acceptable as an instance of
	// the expected type.
	CheckInputType(expected cty.Type, value cty.Value) bool

	// BuildResult assembles the requested outputs into the caller-facing
	// result.
	BuildResult(outputs map[string]cty.Value) (cty.Value, error)
}

// Default checks inputs by cty type conformance and materializes results as
// a single object value keyed by output name.
type Default struct{}

// NewDefault returns the default adapter.
func NewDefault() *Default {
	return &Default{}
}

// CheckInputType accepts a value whose type equals the expected type or
// converts losslessly to it. An expected type of any accepts everything.
func (*Default) CheckInputType(expected cty.Type, value cty.Value) bool {
	if expected.Equals(cty.DynamicPseudoType) {
		return true
	}
	if value.Type().Equals(expected) {
		return true
	}
	_, err := convert.Convert(value, expected)
	return err == nil
}

// BuildResult returns the outputs as one cty object value.
func (*Default) BuildResult(outputs map[string]cty.Value) (cty.Value, error) {
	if len(outputs) == 0 {
		return cty.EmptyObjectVal, nil
	}
	return cty.ObjectVal(outputs), nil
}
