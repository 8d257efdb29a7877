package mvcgen

import (
	"context"
	"time"

	"github.com/goliatone/go-mvcgen/internal/loader"
	"github.com/goliatone/go-mvcgen/pkg/openapi"
	"github.com/goliatone/go-mvcgen/pkg/schema"
	"github.com/goliatone/go-mvcgen/pkg/store/catalog"
)

// OpenCatalog opens a YAML schema catalog. When allowHTTP is set, catalog
// entries may point at http(s) URLs.
func OpenCatalog(path string, allowHTTP bool) (*catalog.Catalog, error) {
	return catalog.Open(path, catalog.WithLoaderOptions(loaderOptions(allowHTTP)...))
}

// OpenOpenAPI loads the OpenAPI document at location (a file path or, when
// allowHTTP is set, a URL) and exposes its component schemas as forms.
func OpenOpenAPI(ctx context.Context, location string, allowHTTP bool) (*openapi.Provider, error) {
	src, err := schema.ParseSource(location)
	if err != nil {
		return nil, err
	}
	doc, err := loader.New(loaderOptions(allowHTTP)...).Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return openapi.FromDocument(ctx, doc)
}

func loaderOptions(allowHTTP bool) []loader.Option {
	if !allowHTTP {
		return nil
	}
	return []loader.Option{loader.WithHTTP(), loader.WithTimeout(30 * time.Second)}
}
