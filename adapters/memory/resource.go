package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/artpar/admingate/ports"
)

// PropertySpec declares one property of an in-memory resource.
type PropertySpec struct {
	Name       string
	Type       ports.PropertyType
	IsID       bool
	IsTitle    bool
	IsSortable bool
}

// property implements ports.Property over a spec.
type property struct {
	spec PropertySpec
}

func (p property) Name() string { return p.spec.Name }

func (p property) Type() ports.PropertyType {
	if p.spec.Type == "" {
		return ports.PropertyTypeString
	}
	return p.spec.Type
}

func (p property) IsID() bool       { return p.spec.IsID }
func (p property) IsTitle() bool    { return p.spec.IsTitle }
func (p property) IsSortable() bool { return p.spec.IsSortable }

// Resource is an in-memory table: declared properties plus a
// mutex-guarded record map.
type Resource struct {
	mu sync.RWMutex

	id         string
	name       string
	dbName     string
	properties []ports.Property

	records map[string]*Record
	order   []string

	idgen ports.IDGenerator
}

// NewResource declares an in-memory resource. id doubles as the
// default display name; dbName groups resources in the sidebar.
func NewResource(id, name, dbName string, specs []PropertySpec, idgen ports.IDGenerator) *Resource {
	props := make([]ports.Property, len(specs))
	for i, s := range specs {
		props[i] = property{spec: s}
	}
	return &Resource{
		id:         id,
		name:       name,
		dbName:     dbName,
		properties: props,
		records:    make(map[string]*Record),
		idgen:      idgen,
	}
}

func (r *Resource) ID() string                   { return r.id }
func (r *Resource) Name() string                 { return r.name }
func (r *Resource) DatabaseName() string         { return r.dbName }
func (r *Resource) DatabaseType() string         { return "memory" }
func (r *Resource) Properties() []ports.Property { return r.properties }

// AddRecord stores a new record. A missing "id" value is generated.
func (r *Resource) AddRecord(params map[string]any) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make(map[string]any, len(params))
	for k, v := range params {
		copied[k] = v
	}

	id, _ := copied["id"].(string)
	if id == "" {
		if r.idgen == nil {
			return nil, fmt.Errorf("resource %q: no id given and no generator configured", r.id)
		}
		id = r.idgen.New()
		copied["id"] = id
	}

	if _, exists := r.records[id]; exists {
		return nil, fmt.Errorf("resource %q: record %q already exists", r.id, id)
	}

	rec := &Record{id: id, params: copied}
	r.records[id] = rec
	r.order = append(r.order, id)
	return rec, nil
}

// Find retrieves a record by ID.
func (r *Resource) Find(ctx context.Context, id string) (ports.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// List returns records honoring sort and pagination parameters.
// SortBy must name a sortable property.
func (r *Resource) List(ctx context.Context, params ports.ListParams) ([]ports.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ports.Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}

	if params.SortBy != "" {
		if !r.sortable(params.SortBy) {
			return nil, fmt.Errorf("resource %q: property %q is not sortable", r.id, params.SortBy)
		}
		desc := strings.EqualFold(params.Direction, "desc")
		sort.SliceStable(out, func(i, j int) bool {
			a := fmt.Sprint(out[i].Param(params.SortBy))
			b := fmt.Sprint(out[j].Param(params.SortBy))
			if desc {
				return a > b
			}
			return a < b
		})
	}

	if params.Offset > 0 {
		if params.Offset >= len(out) {
			return nil, nil
		}
		out = out[params.Offset:]
	}
	if params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out, nil
}

// Count returns the number of stored records.
func (r *Resource) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func (r *Resource) sortable(name string) bool {
	for _, p := range r.properties {
		if p.Name() == name {
			return p.IsSortable()
		}
	}
	return false
}

// Ensure interface compliance.
var _ ports.Resource = (*Resource)(nil)

// Record is an in-memory row.
type Record struct {
	id     string
	params map[string]any
}

func (rec *Record) ID() string { return rec.id }

func (rec *Record) Param(path string) any { return rec.params[path] }

// Params returns a copy of the stored values.
func (rec *Record) Params() map[string]any {
	out := make(map[string]any, len(rec.params))
	for k, v := range rec.params {
		out[k] = v
	}
	return out
}

// Ensure interface compliance.
var _ ports.Record = (*Record)(nil)
