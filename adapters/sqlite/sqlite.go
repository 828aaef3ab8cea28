// Package sqlite provides a SQLite-backed database adapter. Resources
// are discovered by introspecting the schema: every user table becomes
// a resource, every column a property.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/artpar/admingate/ports"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite database connection.
type DB struct {
	*sql.DB
}

// Open creates a new SQLite database connection.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Set pragmas for performance
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	return &DB{DB: db}, nil
}

// Adapter exposes the tables of one SQLite database as admin resources.
type Adapter struct {
	db     *DB
	dbName string
}

// NewAdapter creates a SQLite adapter. dbName is the display name used
// for sidebar grouping.
func NewAdapter(db *DB, dbName string) *Adapter {
	if dbName == "" {
		dbName = "sqlite"
	}
	return &Adapter{db: db, dbName: dbName}
}

// Name identifies the adapter.
func (a *Adapter) Name() string { return "sqlite" }

// Resources introspects the schema and returns one resource per user
// table, in name order. Internal sqlite_* tables are skipped.
func (a *Adapter) Resources(ctx context.Context) ([]ports.Resource, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	resources := make([]ports.Resource, 0, len(tables))
	for _, table := range tables {
		res, err := a.introspectTable(ctx, table)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, nil
}

// introspectTable reads column metadata for one table.
func (a *Adapter) introspectTable(ctx context.Context, table string) (*Resource, error) {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	res := &Resource{db: a.db, dbName: a.dbName, table: table}

	titleSeen := false
	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}

		col := column{
			name:     name,
			propType: propertyType(colType),
			isID:     pk > 0,
		}
		// First text column doubles as the record title.
		if !titleSeen && !col.isID && col.propType == ports.PropertyTypeString {
			col.isTitle = true
			titleSeen = true
		}
		res.columns = append(res.columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns of %s: %w", table, err)
	}
	if len(res.columns) == 0 {
		return nil, fmt.Errorf("table %q has no columns", table)
	}
	return res, nil
}

// propertyType maps a SQLite column type to a presentation type using
// the standard affinity rules.
func propertyType(colType string) ports.PropertyType {
	t := strings.ToUpper(colType)
	switch {
	case strings.Contains(t, "INT"):
		return ports.PropertyTypeNumber
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"):
		return ports.PropertyTypeFloat
	case strings.Contains(t, "BOOL"):
		return ports.PropertyTypeBoolean
	case strings.Contains(t, "DATETIME"), strings.Contains(t, "TIMESTAMP"):
		return ports.PropertyTypeDatetime
	case strings.Contains(t, "DATE"):
		return ports.PropertyTypeDate
	default:
		return ports.PropertyTypeString
	}
}

// quoteIdent quotes an identifier; parameter binding does not cover
// table and column names.
func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// Ensure interface compliance.
var _ ports.Adapter = (*Adapter)(nil)
