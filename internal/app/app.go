package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/zclconf/go-cty/cty"

	"github.com/kemaleren/hamilton/internal/adapter"
	"github.com/kemaleren/hamilton/internal/ctxlog"
	"github.com/kemaleren/hamilton/internal/driver"
	"github.com/kemaleren/hamilton/internal/manifest"
	"github.com/kemaleren/hamilton/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: an isolated logger, the populated registry, and the driver
// built from the loaded declarations.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	cfg    *Config
	reg    *registry.Registry
	driver *driver.Driver
}

// NewApp is the constructor for the main application. It loads declarations
// and static config, populates and validates the registry, and builds the
// driver. Logs go to errW so outW carries only results.
func NewApp(outW, errW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	funcs, err := manifest.LoadDir(ctx, cfg.ModulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load declarations: %w", err)
	}

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.AddDeclarations(funcs); err != nil {
		return nil, err
	}
	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}

	var config map[string]cty.Value
	if cfg.ConfigPath != "" {
		config, err = manifest.LoadConfigFile(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load static config: %w", err)
		}
	}

	d, err := driver.New(reg.Definitions(), config, adapter.NewDefault(), logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Driver constructed.", "funcs", len(funcs))

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		cfg:    cfg,
		reg:    reg,
		driver: d,
	}, nil
}

// Driver returns the application's driver. This is primarily for testing.
func (a *App) Driver() *driver.Driver {
	return a.driver
}
