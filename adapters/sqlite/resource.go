package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/artpar/admingate/ports"
)

// column is one introspected table column.
type column struct {
	name     string
	propType ports.PropertyType
	isID     bool
	isTitle  bool
}

func (c column) Name() string             { return c.name }
func (c column) Type() ports.PropertyType { return c.propType }
func (c column) IsID() bool               { return c.isID }
func (c column) IsTitle() bool            { return c.isTitle }

// IsSortable is true for every real column; SQLite can order by any of
// them.
func (c column) IsSortable() bool { return true }

var _ ports.Property = column{}

// Resource is one introspected table.
type Resource struct {
	db      *DB
	dbName  string
	table   string
	columns []column
}

func (r *Resource) ID() string           { return r.table }
func (r *Resource) Name() string         { return r.table }
func (r *Resource) DatabaseName() string { return r.dbName }
func (r *Resource) DatabaseType() string { return "sqlite" }

// Properties returns columns in table order.
func (r *Resource) Properties() []ports.Property {
	out := make([]ports.Property, len(r.columns))
	for i, c := range r.columns {
		out[i] = c
	}
	return out
}

// idColumn returns the primary key column name, falling back to the
// first column for tables without an explicit primary key.
func (r *Resource) idColumn() string {
	for _, c := range r.columns {
		if c.isID {
			return c.name
		}
	}
	return r.columns[0].name
}

func (r *Resource) columnNames() []string {
	out := make([]string, len(r.columns))
	for i, c := range r.columns {
		out[i] = quoteIdent(c.name)
	}
	return out
}

// Find retrieves a single record by ID.
func (r *Resource) Find(ctx context.Context, id string) (ports.Record, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ?",
		strings.Join(r.columnNames(), ", "), quoteIdent(r.table), quoteIdent(r.idColumn()),
	)

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", r.table, err)
	}
	defer rows.Close()

	records, err := r.scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// List returns records honoring sort and pagination parameters.
// SortBy must name an introspected column; anything else is rejected
// before it reaches the SQL string.
func (r *Resource) List(ctx context.Context, params ports.ListParams) ([]ports.Record, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(r.columnNames(), ", "), quoteIdent(r.table))

	if params.SortBy != "" {
		if !r.hasColumn(params.SortBy) {
			return nil, fmt.Errorf("resource %q: property %q is not sortable", r.table, params.SortBy)
		}
		dir := "ASC"
		if strings.EqualFold(params.Direction, "desc") {
			dir = "DESC"
		}
		fmt.Fprintf(&b, " ORDER BY %s %s", quoteIdent(params.SortBy), dir)
	}

	var args []any
	if params.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, params.Limit)
		if params.Offset > 0 {
			b.WriteString(" OFFSET ?")
			args = append(args, params.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

// Count returns the total number of rows.
func (r *Resource) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(r.table)),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table, err)
	}
	return n, nil
}

func (r *Resource) hasColumn(name string) bool {
	for _, c := range r.columns {
		if c.name == name {
			return true
		}
	}
	return false
}

func (r *Resource) scanRecords(rows *sql.Rows) ([]ports.Record, error) {
	idCol := r.idColumn()

	var out []ports.Record
	for rows.Next() {
		values := make([]any, len(r.columns))
		scanTargets := make([]any, len(r.columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("scan row of %s: %w", r.table, err)
		}

		params := make(map[string]any, len(r.columns))
		for i, c := range r.columns {
			params[c.name] = normalizeValue(values[i])
		}

		out = append(out, &Record{
			id:     fmt.Sprint(params[idCol]),
			params: params,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows of %s: %w", r.table, err)
	}
	return out, nil
}

// normalizeValue converts driver byte slices to strings so records
// serialize as text rather than base64.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// Ensure interface compliance.
var _ ports.Resource = (*Resource)(nil)

// Record is one table row.
type Record struct {
	id     string
	params map[string]any
}

func (rec *Record) ID() string            { return rec.id }
func (rec *Record) Param(path string) any { return rec.params[path] }

// Params returns a copy of the row values.
func (rec *Record) Params() map[string]any {
	out := make(map[string]any, len(rec.params))
	for k, v := range rec.params {
		out[k] = v
	}
	return out
}

// Ensure interface compliance.
var _ ports.Record = (*Record)(nil)
