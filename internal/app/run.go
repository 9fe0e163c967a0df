package app

import (
	"context"
	"fmt"

	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/kemaleren/hamilton/internal/ctxlog"
)

// Run executes the requested application mode: listing available variables,
// the pre-flight cycle check, or a full execution whose result is written to
// the output writer as JSON.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.cfg.List {
		for _, v := range a.driver.ListVariables() {
			fmt.Fprintf(a.outW, "%s\t%s\n", v.Name, v.Type.FriendlyName())
		}
		return nil
	}

	if a.cfg.CheckCycles {
		hasCycles, err := a.driver.HasCycles(a.cfg.Outputs)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "hasCycles = %t\n", hasCycles)
		return nil
	}

	a.logger.Info("Starting execution.", "outputs", a.cfg.Outputs)
	result, err := a.driver.Execute(ctx, a.cfg.Outputs, a.cfg.Overrides, a.cfg.Inputs)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("Execution finished.")

	encoded, err := ctyjson.Marshal(result, result.Type())
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(a.outW, string(encoded))
	return nil
}
