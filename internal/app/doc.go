// Package app wires the engine together for the command-line binary:
// logger, declaration loading, registry population and parity validation,
// driver construction, and the run modes (execute, list, cycle check).
package app
