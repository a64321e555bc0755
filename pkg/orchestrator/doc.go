// Package orchestrator wires the controller view, the form model builder and
// the renderer registry into a single Generate call.
package orchestrator
