package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty/convert"
)

// fileSchema is the HCL schema for the top level of a declaration file.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "func", LabelNames: []string{"name"}},
	},
}

// funcBodySchema is the HCL schema for the body of a `func` block.
var funcBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "returns"},
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "input", LabelNames: []string{"name"}},
	},
}

// inputBodySchema is the HCL schema for the body of an `input` block.
var inputBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "description"},
		{Name: "default"},
	},
}

// decodeFuncs extracts all `func` declarations from a file body.
func decodeFuncs(body hcl.Body) ([]Func, hcl.Diagnostics) {
	content, diags := body.Content(fileSchema)

	var funcs []Func
	for _, block := range content.Blocks {
		fn, fnDiags := decodeFunc(block)
		diags = append(diags, fnDiags...)
		if fnDiags.HasErrors() {
			continue
		}
		funcs = append(funcs, fn)
	}
	return funcs, diags
}

// decodeFunc parses one `func` block into a declaration.
func decodeFunc(block *hcl.Block) (Func, hcl.Diagnostics) {
	fn := Func{Name: block.Labels[0]}

	content, diags := block.Body.Content(funcBodySchema)
	if diags.HasErrors() {
		return fn, diags
	}

	returnsAttr, ok := content.Attributes["returns"]
	if !ok {
		missingItemRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'returns' attribute",
			Detail:   fmt.Sprintf("The func block '%s' must declare the type of the output it produces.", fn.Name),
			Subject:  &missingItemRange,
		})
		return fn, diags
	}
	returns, err := typeExprToCtyType(returnsAttr.Expr)
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid return type",
			Detail:   err.Error(),
			Subject:  returnsAttr.Expr.Range().Ptr(),
		})
		return fn, diags
	}
	fn.Returns = returns

	if descAttr, ok := content.Attributes["description"]; ok {
		evalDiags := gohcl.DecodeExpression(descAttr.Expr, nil, &fn.Description)
		diags = append(diags, evalDiags...)
	}

	seen := make(map[string]bool)
	for _, inputBlock := range content.Blocks.OfType("input") {
		name := inputBlock.Labels[0]
		if seen[name] {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate input definition",
				Detail:   fmt.Sprintf("An input named '%s' has already been defined on func '%s'.", name, fn.Name),
				Subject:  &inputBlock.DefRange,
			})
			continue
		}
		seen[name] = true

		input, inputDiags := decodeInput(inputBlock)
		diags = append(diags, inputDiags...)
		if inputDiags.HasErrors() {
			continue
		}
		fn.Inputs = append(fn.Inputs, input)
	}

	return fn, diags
}

// decodeInput parses one `input` block into an input declaration.
func decodeInput(block *hcl.Block) (Input, hcl.Diagnostics) {
	input := Input{Name: block.Labels[0]}

	content, diags := block.Body.Content(inputBodySchema)
	if diags.HasErrors() {
		return input, diags
	}

	typeAttr, ok := content.Attributes["type"]
	if !ok {
		missingItemRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'type' attribute",
			Detail:   "The 'type' attribute is required for all input blocks.",
			Subject:  &missingItemRange,
		})
		return input, diags
	}
	inputType, err := typeExprToCtyType(typeAttr.Expr)
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid input type",
			Detail:   err.Error(),
			Subject:  typeAttr.Expr.Range().Ptr(),
		})
		return input, diags
	}
	input.Type = inputType

	if descAttr, ok := content.Attributes["description"]; ok {
		evalDiags := gohcl.DecodeExpression(descAttr.Expr, nil, &input.Description)
		diags = append(diags, evalDiags...)
	}

	if defaultAttr, ok := content.Attributes["default"]; ok {
		// A nil eval context is used because defaults must be literal values.
		val, valDiags := defaultAttr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			return input, diags
		}

		// Conform the literal to the declared type; e.g. a `[1, 2]` literal
		// is a tuple until converted to list(number).
		converted, err := convert.Convert(val, inputType)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid default value type",
				Detail:   fmt.Sprintf("The default value for '%s' is not compatible with its type, '%s': %s.", input.Name, inputType.FriendlyName(), err),
				Subject:  defaultAttr.Expr.Range().Ptr(),
			})
			return input, diags
		}
		input.Default = &converted
	}

	return input, diags
}
