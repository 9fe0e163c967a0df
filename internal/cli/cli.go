package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/kemaleren/hamilton/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// valueMap is a repeatable name=expression flag whose expressions are parsed
// as HCL literals.
type valueMap map[string]cty.Value

func (m valueMap) String() string { return fmt.Sprintf("%d values", len(m)) }

func (m valueMap) Set(v string) error {
	name, expr, ok := strings.Cut(v, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", v)
	}
	val, err := parseValue(expr)
	if err != nil {
		return fmt.Errorf("parsing value for %q: %w", name, err)
	}
	m[name] = val
	return nil
}

// parseValue evaluates an HCL literal expression into a cty value.
func parseValue(src string) (cty.Value, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<arg>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return val, nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("hamilton", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
hamilton - a declarative dataflow engine.

Usage:
  hamilton [options] OUTPUT [OUTPUT...]

Arguments:
  OUTPUT
    Name of an output to compute. Repeatable.

Options:
`)
		flagSet.PrintDefaults()
	}

	modulesFlag := flagSet.String("modules", "modules", "Path to the directory containing unit declarations.")
	mFlag := flagSet.String("m", "", "Path to the directory containing unit declarations (shorthand).")
	configFlag := flagSet.String("config", "", "Path to a static configuration file.")
	listFlag := flagSet.Bool("list", false, "List every available output and its type, then exit.")
	checkCyclesFlag := flagSet.Bool("check-cycles", false, "Report whether the closure for the requested outputs is cyclic, then exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	inputs := valueMap{}
	overrides := valueMap{}
	flagSet.Var(inputs, "input", "Runtime input as name=value, where value is an HCL literal. Repeatable.")
	flagSet.Var(overrides, "override", "Override a node's value as name=value, suppressing its computation. Repeatable.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	modulesPath := *modulesFlag
	if *mFlag != "" {
		modulesPath = *mFlag
	}

	outputs := flagSet.Args()
	if len(outputs) == 0 && !*listFlag {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		ModulesPath: modulesPath,
		ConfigPath:  *configFlag,
		Outputs:     outputs,
		Inputs:      inputs,
		Overrides:   overrides,
		List:        *listFlag,
		CheckCycles: *checkCyclesFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
