package manifest

import (
	"github.com/zclconf/go-cty/cty"
)

// Func is the parsed declaration of one computation unit: the output name it
// produces, its declared return type, and its inputs in declaration order.
// The Go function implementing the unit is registered separately and matched
// to the declaration by name.
type Func struct {
	Name        string
	Returns     cty.Type
	Description string
	Inputs      []Input
}

// Input declares a single named, typed input of a unit. A non-nil Default
// makes the input optional.
type Input struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
}
