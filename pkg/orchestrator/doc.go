// Package orchestrator wires schema lookup, context construction and the
// model and view generators into a single Generate call.
package orchestrator
