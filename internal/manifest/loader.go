package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/kemaleren/hamilton/internal/ctxlog"
	"github.com/kemaleren/hamilton/internal/fsutil"
)

// LoadDir walks the given path recursively and parses every .hcl file it
// finds into unit declarations.
func LoadDir(ctx context.Context, path string) ([]Func, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading unit declarations.", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("walking declarations path %s: %w", path, err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl declaration files found in path.", "path", path)
		return nil, nil
	}

	parser := hclparse.NewParser()
	var funcs []Func
	for _, filePath := range filePaths {
		file, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", filePath, diags)
		}
		fileFuncs, diags := decodeFuncs(file.Body)
		if diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", filePath, diags)
		}
		funcs = append(funcs, fileFuncs...)
		logger.Debug("Loaded declarations from file.", "file", filePath, "funcs", len(fileFuncs))
	}

	logger.Info("Unit declarations loaded.", "files", len(filePaths), "funcs", len(funcs))
	return funcs, nil
}

// LoadConfigFile parses a single HCL file of top-level attributes into a
// static configuration mapping. Attribute values must be literals.
func LoadConfigFile(ctx context.Context, path string) (map[string]cty.Value, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing config %s: %w", path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("reading config %s: %w", path, diags)
	}

	config := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			return nil, fmt.Errorf("evaluating config value %q in %s: %w", name, path, valDiags)
		}
		config[name] = val
	}

	logger.Debug("Static configuration loaded.", "file", path, "keys", len(config))
	return config, nil
}
