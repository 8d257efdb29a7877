// Package codegen builds the immutable generation context shared by the model
// and view generators: normalized identifiers for the namespace, model class,
// controller and action, the eligible field list in schema order, and the
// unique property name assigned to every eligible field.
//
// A Context is constructed once per generation request and never mutated.
// Property names are keyed by the schema field name so descriptors are never
// shared by reference.
package codegen
