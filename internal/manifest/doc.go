// Package manifest parses the HCL declaration surface of the engine. A
// `func` block declares one computation unit's output name, return type, and
// typed inputs with optional defaults; a config file is a flat set of
// attributes holding literal values fixed for a graph's lifetime. The Go
// functions implementing declared units are registered separately and
// matched by name in the registry.
package manifest
