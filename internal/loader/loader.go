// Package loader fetches raw schema definitions from files, an fs.FS or HTTP.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// Option configures a Loader.
type Option func(*Loader)

// WithFS resolves fs sources inside filesystem.
func WithFS(filesystem fs.FS) Option {
	return func(l *Loader) {
		l.fs = filesystem
	}
}

// WithBaseDir resolves relative file sources against dir.
func WithBaseDir(dir string) Option {
	return func(l *Loader) {
		l.baseDir = dir
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client == nil {
			return
		}
		clone := *client
		l.http = &clone
	}
}

// WithHTTP enables URL sources with a default client.
func WithHTTP() Option {
	return func(l *Loader) {
		if l.http == nil {
			l.http = &http.Client{}
		}
	}
}

// WithTimeout bounds every HTTP request.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// Loader reads schema documents from the source kinds in schema.SourceKind.
type Loader struct {
	fs      fs.FS
	baseDir string
	http    *http.Client
	timeout time.Duration
}

// New constructs a Loader. URL sources are rejected unless WithHTTP or
// WithHTTPClient is supplied.
func New(options ...Option) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	if l.http != nil && l.timeout > 0 && l.http.Timeout == 0 {
		l.http.Timeout = l.timeout
	}
	return l
}

// Load fetches src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case schema.SourceKindFile:
		path := src.Location()
		if l.baseDir != "" && path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(l.baseDir, path)
		}
		data, err = loadFile(ctx, path)
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindURL:
		if l.http == nil {
			return schema.Document{}, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, fmt.Errorf("loader: %s: %w", src.Location(), err)
	}

	return schema.NewDocument(src, data)
}
