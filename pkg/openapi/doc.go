// Package openapi serves form definitions derived from the component schemas
// of an OpenAPI 3 document. Every object schema under components.schemas
// becomes one definition; its scalar properties become fields.
//
// CMS metadata the OpenAPI vocabulary cannot express travels in extensions:
//
//	x-control      control name (defaults from type and format)
//	x-caption      caption, may contain macros (defaults to title, then name)
//	x-visible      bool, defaults to true
//	x-public       bool, defaults to true
//	x-system       bool
//	x-primary-key  bool
//	x-order        number, properties sort by x-order then name
//	x-min-value    raw minimum (for dates and time spans)
//	x-max-value    raw maximum
//	x-settings     map of control settings
package openapi
