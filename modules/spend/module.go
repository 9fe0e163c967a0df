// Package spend is the canonical example handler bundle: a small marketing
// spend dataflow over per-period spend figures. Its unit declarations live
// in spend.hcl next to this file.
package spend

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/kemaleren/hamilton/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the package's compute handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFunc("total_spend", totalSpend)
	r.RegisterFunc("avg_spend", avgSpend)
	r.RegisterFunc("spend_per_signup", spendPerSignup)
	r.RegisterFunc("spend_zero_mean", spendZeroMean)
}

// totalSpend sums the spend series.
func totalSpend(ctx context.Context, inputs map[string]cty.Value) (cty.Value, error) {
	total := cty.Zero
	for it := inputs["spend"].ElementIterator(); it.Next(); {
		_, v := it.Element()
		total = total.Add(v)
	}
	return total, nil
}

// avgSpend averages the trailing window of the spend series.
func avgSpend(ctx context.Context, inputs map[string]cty.Value) (cty.Value, error) {
	spend := inputs["spend"]
	length := spend.LengthInt()
	if length == 0 {
		return cty.NilVal, fmt.Errorf("spend series is empty")
	}

	var window int
	if err := gocty.FromCtyValue(inputs["window"], &window); err != nil {
		return cty.NilVal, fmt.Errorf("invalid window: %w", err)
	}
	if window <= 0 {
		return cty.NilVal, fmt.Errorf("window must be positive, got %d", window)
	}
	if window > length {
		window = length
	}

	total := cty.Zero
	index := 0
	for it := spend.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if index >= length-window {
			total = total.Add(v)
		}
		index++
	}
	return total.Divide(cty.NumberIntVal(int64(window))), nil
}

// spendPerSignup divides total spend by the signup count.
func spendPerSignup(ctx context.Context, inputs map[string]cty.Value) (cty.Value, error) {
	signups := inputs["signups"]
	if signups.RawEquals(cty.Zero) {
		return cty.NilVal, fmt.Errorf("signups must be non-zero")
	}
	return inputs["total_spend"].Divide(signups), nil
}

// spendZeroMean shifts the spend series so its trailing-window mean is zero.
func spendZeroMean(ctx context.Context, inputs map[string]cty.Value) (cty.Value, error) {
	mean := inputs["avg_spend"]
	var shifted []cty.Value
	for it := inputs["spend"].ElementIterator(); it.Next(); {
		_, v := it.Element()
		shifted = append(shifted, v.Subtract(mean))
	}
	if len(shifted) == 0 {
		return cty.ListValEmpty(cty.Number), nil
	}
	return cty.ListVal(shifted), nil
}
