// Package schema defines the read-only form definition consumed by the code
// generators. A Definition is an ordered list of Field descriptors decoded from
// the CMS form definition format (XML) or its YAML/JSON equivalent. Providers
// resolve definitions by numeric schema identifier; implementations live under
// pkg/store and pkg/openapi.
package schema
