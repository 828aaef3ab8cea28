// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// Hasher provides password hashing for admin credentials.
type Hasher interface {
	// Hash generates a hash from a plaintext value.
	Hash(plaintext string) ([]byte, error)

	// Compare checks if plaintext matches hash.
	Compare(hash []byte, plaintext string) bool
}

// -----------------------------------------------------------------------------
// Database Adapter Ports
// -----------------------------------------------------------------------------

// Adapter exposes the resources of one database to the admin interface.
// Implementations introspect whatever schema metadata the underlying
// engine provides and present it through the Resource contract.
type Adapter interface {
	// Name identifies the adapter ("sqlite", "memory", ...).
	Name() string

	// Resources returns every resource (table/collection) the adapter
	// exposes, in a stable order.
	Resources(ctx context.Context) ([]Resource, error)
}

// Resource is one table/collection exposed to the admin interface.
// Property order is significant: it fixes the default presentation
// order before user options are applied.
type Resource interface {
	// ID is the stable identifier used in URLs and configuration keys.
	ID() string

	// Name is the human-oriented resource name (usually the table name).
	Name() string

	// DatabaseName identifies the database this resource belongs to.
	DatabaseName() string

	// DatabaseType identifies the engine ("sqlite", "memory", "").
	DatabaseType() string

	// Properties returns the resource's property descriptors in
	// presentation order.
	Properties() []Property

	// Find retrieves a single record by ID.
	Find(ctx context.Context, id string) (Record, error)

	// List returns records for the list view.
	List(ctx context.Context, params ListParams) ([]Record, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int, error)
}

// PropertyType classifies a property for presentation purposes.
type PropertyType string

const (
	PropertyTypeString    PropertyType = "string"
	PropertyTypeNumber    PropertyType = "number"
	PropertyTypeFloat     PropertyType = "float"
	PropertyTypeBoolean   PropertyType = "boolean"
	PropertyTypeDate      PropertyType = "date"
	PropertyTypeDatetime  PropertyType = "datetime"
	PropertyTypeReference PropertyType = "reference"
	PropertyTypeMixed     PropertyType = "mixed"
)

// Property is one adapter-provided fact about a resource field.
type Property interface {
	// Name is the property path, unique within its resource.
	Name() string

	// Type classifies the property for the front end.
	Type() PropertyType

	// IsID reports whether this property is the record identifier.
	IsID() bool

	// IsTitle reports whether the adapter considers this property a
	// natural record title (e.g. a "name" or "title" column).
	IsTitle() bool

	// IsSortable reports whether records can be ordered by this property.
	IsSortable() bool
}

// ListParams constrains a record listing.
type ListParams struct {
	// SortBy is a property name; must be sortable. Empty means adapter order.
	SortBy string

	// Direction is "asc" or "desc". Defaults to "asc".
	Direction string

	// Limit caps the number of records returned (0 = adapter default).
	Limit int

	// Offset skips records for pagination.
	Offset int
}

// Record is one row/document of a resource.
type Record interface {
	// ID returns the record identifier as a string.
	ID() string

	// Param returns the value stored under the given property path,
	// or nil when the record has no such value.
	Param(path string) any

	// Params returns all stored values keyed by property path.
	Params() map[string]any
}

// -----------------------------------------------------------------------------
// Admin Context Ports
// -----------------------------------------------------------------------------

// CurrentAdmin is the acting user for one request. Action predicates
// receive it by value; a zero CurrentAdmin means "not authenticated".
type CurrentAdmin struct {
	Email string
	Role  string
	Meta  map[string]any
}

// IsZero reports whether no admin is authenticated.
func (a CurrentAdmin) IsZero() bool {
	return a.Email == "" && a.Role == "" && len(a.Meta) == 0
}

// ActionRequest bundles the request-scoped inputs an action predicate
// may inspect. Record is nil for resource-scoped checks.
type ActionRequest struct {
	Admin  CurrentAdmin
	Record Record
}

// SessionStore issues and validates admin sessions.
type SessionStore interface {
	// Issue creates a session token for an authenticated admin.
	Issue(admin CurrentAdmin, ttl time.Duration) (string, error)

	// Resolve validates a token and returns the admin it was issued for.
	Resolve(token string) (CurrentAdmin, error)
}
