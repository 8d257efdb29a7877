// Package template defines the engine contract artifact generators render
// through. Implementations live in subpackages (see gotemplate).
package template
