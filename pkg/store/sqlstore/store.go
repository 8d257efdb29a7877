// Package sqlstore reads form definitions from a CMS class table:
//
//	cms_class(class_id INTEGER PRIMARY KEY, class_name TEXT, class_form_definition TEXT)
//
// The definition column holds the XML (or YAML) payload understood by
// schema.Decode.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-mvcgen/pkg/schema"
)

// DefaultTable is the class table queried when WithTable is not supplied.
const DefaultTable = "cms_class"

// Option configures a Store.
type Option func(*Store)

// WithTable overrides DefaultTable.
func WithTable(name string) Option {
	return func(s *Store) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.table = trimmed
		}
	}
}

// Store implements schema.Provider and schema.Lister over database/sql.
type Store struct {
	db    *sql.DB
	table string
}

var (
	_ schema.Provider = (*Store)(nil)
	_ schema.Lister   = (*Store)(nil)
)

// New wraps db. The table name is validated because it is interpolated into
// queries.
func New(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, errors.New("sqlstore: db is required")
	}
	s := &Store{db: db, table: DefaultTable}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if !validTableName(s.table) {
		return nil, fmt.Errorf("sqlstore: invalid table name %q", s.table)
	}
	return s, nil
}

// CreateTable creates the class table when it does not exist yet.
func (s *Store) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS `+s.table+` (
			class_id              INTEGER PRIMARY KEY,
			class_name            TEXT NOT NULL DEFAULT '',
			class_form_definition TEXT
		)`)
	if err != nil {
		return fmt.Errorf("sqlstore: create table: %w", err)
	}
	return nil
}

// Put inserts or replaces a class row.
func (s *Store) Put(ctx context.Context, id int64, name, definition string) error {
	if id <= 0 {
		return fmt.Errorf("sqlstore: id must be positive, got %d", id)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO `+s.table+` (class_id, class_name, class_form_definition)
		VALUES (?, ?, ?)
		ON CONFLICT(class_id) DO UPDATE SET
			class_name = excluded.class_name,
			class_form_definition = excluded.class_form_definition`,
		id, name, definition)
	if err != nil {
		return fmt.Errorf("sqlstore: put class %d: %w", id, err)
	}
	return nil
}

// Schema implements schema.Provider.
func (s *Store) Schema(ctx context.Context, id int64) (schema.Definition, error) {
	var (
		name       string
		definition sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT class_name, class_form_definition FROM `+s.table+` WHERE class_id = ?`, id,
	).Scan(&name, &definition)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.Definition{}, &schema.SchemaNotFoundError{ID: id}
	}
	if err != nil {
		return schema.Definition{}, fmt.Errorf("sqlstore: query class %d: %w", id, err)
	}

	def, err := schema.Decode([]byte(definition.String))
	if err != nil {
		var invalid *schema.InvalidSchemaDefinitionError
		if errors.As(err, &invalid) {
			invalid.ID = id
		}
		return schema.Definition{}, err
	}
	def.ID = id
	if def.Name == "" {
		def.Name = name
	}
	return def, nil
}

// List implements schema.Lister. Classes without a form definition are
// skipped.
func (s *Store) List(ctx context.Context) ([]schema.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT class_id, class_name FROM `+s.table+`
		WHERE class_form_definition IS NOT NULL AND class_form_definition <> ''
		ORDER BY class_id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: list classes: %w", err)
	}
	defer rows.Close()

	var out []schema.Summary
	for rows.Next() {
		var summary schema.Summary
		if err := rows.Scan(&summary.ID, &summary.Name); err != nil {
			return nil, fmt.Errorf("sqlstore: scan class: %w", err)
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: list classes: %w", err)
	}
	return out, nil
}

func validTableName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		case r == '.' && i > 0:
		default:
			return false
		}
	}
	return true
}
