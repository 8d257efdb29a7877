// Package mvcgen generates ASP.NET MVC model classes and Razor partial views
// from CMS form schemas.
//
// The root package re-exports the orchestrator so callers can generate code
// without importing the pkg/ tree directly:
//
//	artifacts, err := mvcgen.Generate(ctx, provider, mvcgen.Request{
//		SchemaID:   3,
//		Namespace:  "Acme.Web.Models",
//		ModelClass: "Contact",
//		Action:     "Send",
//		Controller: "Contact",
//	})
package mvcgen

import (
	"context"

	"github.com/goliatone/go-mvcgen/pkg/orchestrator"
	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// Request carries the schema id and identifier seeds of one generation.
type Request = orchestrator.Request

// Artifacts holds the generated model and view sources.
type Artifacts = orchestrator.Artifacts

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate resolves req against provider and renders both artifacts. It is
// the simplest entry point for callers that already have a schema store.
func Generate(ctx context.Context, provider schema.Provider, req Request, options ...orchestrator.Option) (Artifacts, error) {
	options = append([]orchestrator.Option{orchestrator.WithProvider(provider)}, options...)
	return orchestrator.New(options...).Generate(ctx, req)
}
