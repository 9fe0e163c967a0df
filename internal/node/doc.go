// Package node defines the vertex model of the dataflow graph: a computation
// unit's output name and type, its typed parameters with optional defaults,
// and its compute behavior. It also provides the Definition record and
// builder options that make up the explicit registration contract.
package node
