// Package pgcatalog loads a currency catalog snapshot from a PostgreSQL table.
//
// The loader runs a single ordered query and returns a catalog.Static, so the
// price widget itself never touches the database. Refreshing the snapshot is
// up to the caller.
package pgcatalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"

	"github.com/goliatone/go-pricefield/pkg/catalog"
	"github.com/goliatone/go-pricefield/pkg/model"
)

// ErrInvalidTable is returned when the configured table name is not a plain
// (optionally schema-qualified) identifier.
var ErrInvalidTable = errors.New("pgcatalog: invalid table name")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Querier is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Options configures the loader.
type Options struct {
	Table        string
	CodeColumn   string
	DigitsColumn string
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the stock table layout:
// currencies(code text, fraction_digits int).
func DefaultOptions() Options {
	return Options{
		Table:        "currencies",
		CodeColumn:   "code",
		DigitsColumn: "fraction_digits",
	}
}

// WithTable overrides the source table.
func WithTable(table string) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Table = table
	}
}

// WithColumns overrides the code and fraction digit columns.
func WithColumns(code, digits string) Option {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CodeColumn = code
		o.DigitsColumn = digits
	}
}

// Query returns the SQL statement used for the supplied options.
func Query(opts Options) (string, error) {
	for _, ident := range []string{opts.Table, opts.CodeColumn, opts.DigitsColumn} {
		if !identifierPattern.MatchString(ident) {
			return "", fmt.Errorf("%w: %q", ErrInvalidTable, ident)
		}
	}
	return fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s",
		opts.CodeColumn, opts.DigitsColumn, opts.Table, opts.CodeColumn), nil
}

// Load queries the currency table and returns an immutable snapshot ordered by
// code.
func Load(ctx context.Context, q Querier, fns ...Option) (*catalog.Static, error) {
	if q == nil {
		return nil, errors.New("pgcatalog: missing querier")
	}
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}

	sql, err := Query(opts)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("pgcatalog: query %s: %w", opts.Table, err)
	}
	defer rows.Close()

	var currencies []model.Currency
	for rows.Next() {
		var (
			code   string
			digits int32
		)
		if err := rows.Scan(&code, &digits); err != nil {
			return nil, fmt.Errorf("pgcatalog: scan: %w", err)
		}
		currencies = append(currencies, model.Currency{Code: code, FractionDigits: int(digits)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgcatalog: rows: %w", err)
	}

	return catalog.NewStatic(currencies...)
}
