// Package decorator reconciles adapter-provided schema metadata with
// user-supplied options into a render-ready model of each resource.
//
// Decorators are built once per configuration load and are immutable
// afterwards: every query is a pure read parameterized by request-time
// arguments (acting admin, record). Reconfiguration rebuilds fresh
// decorators instead of mutating live ones.
package decorator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/artpar/admingate/core/action"
	"github.com/artpar/admingate/core/convention"
	"github.com/artpar/admingate/core/options"
	"github.com/artpar/admingate/ports"
)

// DefaultMaxListProperties caps the column count of list views when no
// explicit ordering override is configured.
const DefaultMaxListProperties = 8

// DefaultRootPath prefixes resource hrefs when the host does not
// configure one.
const DefaultRootPath = "/admin"

// Resource is the aggregate decorator for one adapter resource. It
// owns the decorated properties (declaration order, synthetics last)
// and the decorated actions (defaults first, customs after).
type Resource struct {
	raw      ports.Resource
	opts     options.ResourceOptions
	rootPath string

	// properties in insertion order plus a name index.
	properties []*Property
	byName     map[string]*Property

	// actions in insertion order plus a name index.
	actions      []*ActionDecorator
	actionByName map[string]*ActionDecorator
}

// New decorates a raw resource with user options. rootPath prefixes
// generated hrefs; empty means DefaultRootPath.
func New(raw ports.Resource, opts options.ResourceOptions, rootPath string) *Resource {
	if rootPath == "" {
		rootPath = DefaultRootPath
	}
	r := &Resource{
		raw:          raw,
		opts:         opts,
		rootPath:     strings.TrimRight(rootPath, "/"),
		byName:       make(map[string]*Property),
		actionByName: make(map[string]*ActionDecorator),
	}
	r.decorateProperties()
	r.decorateActions()
	return r
}

// decorateProperties wraps every adapter descriptor in declaration
// order, then synthesizes one virtual property per non-dotted path that
// appears only in the options. Dotted unknown paths are dropped: they
// are assumed to reference nested properties managed elsewhere.
func (r *Resource) decorateProperties() {
	descriptors := r.raw.Properties()
	r.properties = make([]*Property, 0, len(descriptors)+len(r.opts.Properties))

	for i, d := range descriptors {
		p := NewProperty(d, r.opts.Properties[d.Name()], i)
		r.properties = append(r.properties, p)
		r.byName[d.Name()] = p
	}

	// Synthetics keep a stable order regardless of map iteration.
	extra := make([]string, 0, len(r.opts.Properties))
	for path := range r.opts.Properties {
		if _, exists := r.byName[path]; exists {
			continue
		}
		if strings.Contains(path, ".") {
			continue
		}
		extra = append(extra, path)
	}
	sort.Strings(extra)

	for _, path := range extra {
		p := NewProperty(syntheticProperty{name: path}, r.opts.Properties[path], len(r.properties))
		r.properties = append(r.properties, p)
		r.byName[path] = p
	}
}

// decorateActions starts from the built-in set, applies user overrides
// field by field, then appends custom actions in name order.
func (r *Resource) decorateActions() {
	for _, a := range action.Defaults() {
		if opts, ok := r.opts.Actions[a.Name]; ok {
			a = a.Apply(opts)
		}
		r.addAction(a)
	}

	custom := make([]string, 0, len(r.opts.Actions))
	for name := range r.opts.Actions {
		if !action.IsDefault(name) {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)

	for _, name := range custom {
		r.addAction(action.FromOptions(name, r.opts.Actions[name]))
	}
}

func (r *Resource) addAction(a action.Action) {
	d := &ActionDecorator{action: a, resource: r}
	r.actions = append(r.actions, d)
	r.actionByName[a.Name] = d
}

// ID returns the raw resource identifier.
func (r *Resource) ID() string { return r.raw.ID() }

// Name resolves the display name: user override, else the pluralized
// label of the raw name ("post" and "posts" both read "Posts").
func (r *Resource) Name() string {
	if r.opts.Name != "" {
		return r.opts.Name
	}
	return convention.PluralLabel(r.raw.Name())
}

// Parent resolves the sidebar section. Defaults to the database name
// with the "icon-<databaseType>" convention.
func (r *Resource) Parent() options.Parent {
	if r.opts.Parent != nil {
		p := *r.opts.Parent
		if p.Icon == "" {
			p.Icon = convention.DatabaseIcon(r.raw.DatabaseType())
		}
		return p
	}
	return options.Parent{
		Name: r.raw.DatabaseName(),
		Icon: convention.DatabaseIcon(r.raw.DatabaseType()),
	}
}

// Href is the canonical URL of the resource's list view.
func (r *Resource) Href() string {
	return fmt.Sprintf("%s/resources/%s", r.rootPath, r.raw.ID())
}

// Raw exposes the underlying adapter resource for record access.
func (r *Resource) Raw() ports.Resource { return r.raw }

// PropertyByKey looks up a decorated property by path. Unknown paths
// are a configuration error carrying the resource name and the path.
func (r *Resource) PropertyByKey(key string) (*Property, error) {
	if p, ok := r.byName[key]; ok {
		return p, nil
	}
	return nil, &ConfigurationError{Resource: r.Name(), Path: key}
}

// Properties returns the decorated properties for one context.
//
// When the options define an explicit ordering override for the
// context, exactly those properties are returned in the given order and
// max is ignored; an unknown name is a ConfigurationError. Otherwise
// the result is the visible properties stable-sorted ascending by
// position, truncated to max when max is positive.
func (r *Resource) Properties(where string, max int) ([]*Property, error) {
	if override := r.opts.ContextProperties(where); override != nil {
		result := make([]*Property, 0, len(override))
		for _, name := range override {
			p, err := r.PropertyByKey(name)
			if err != nil {
				return nil, err
			}
			result = append(result, p)
		}
		return result, nil
	}

	result := make([]*Property, 0, len(r.properties))
	for _, p := range r.properties {
		if p.IsVisible(where) {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position() < result[j].Position()
	})

	if max > 0 && len(result) > max {
		result = result[:max]
	}
	return result, nil
}

// ListProperties returns the list-context properties capped at
// DefaultMaxListProperties.
func (r *Resource) ListProperties() ([]*Property, error) {
	return r.Properties(PlaceList, DefaultMaxListProperties)
}

// ResourceActions returns the resource-scoped actions that are both
// visible to and accessible by the acting admin, in insertion order.
func (r *Resource) ResourceActions(admin ports.CurrentAdmin) []*ActionDecorator {
	return r.filterActions(action.ScopeResource, admin, nil)
}

// RecordActions returns the record-scoped actions that are both
// visible and accessible for the given record and admin.
func (r *Resource) RecordActions(record ports.Record, admin ports.CurrentAdmin) []*ActionDecorator {
	return r.filterActions(action.ScopeRecord, admin, record)
}

func (r *Resource) filterActions(scope action.Scope, admin ports.CurrentAdmin, record ports.Record) []*ActionDecorator {
	result := make([]*ActionDecorator, 0, len(r.actions))
	for _, a := range r.actions {
		if a.Scope() != scope {
			continue
		}
		if !a.IsVisible(admin, record) || !a.IsAccessible(admin, record) {
			continue
		}
		result = append(result, a)
	}
	return result
}

// ActionByName looks up a decorated action.
func (r *Resource) ActionByName(name string) (*ActionDecorator, bool) {
	a, ok := r.actionByName[name]
	return a, ok
}

// TitleProperty returns the first property flagged as title, falling
// back to the first property in declaration order. Returns nil only
// for a resource with zero properties, which violates the adapter
// contract and is rejected by Validate.
func (r *Resource) TitleProperty() *Property {
	for _, p := range r.properties {
		if p.IsTitle() {
			return p
		}
	}
	if len(r.properties) > 0 {
		return r.properties[0]
	}
	return nil
}

// TitleOf reads the title property's value from a record.
func (r *Resource) TitleOf(record ports.Record) string {
	tp := r.TitleProperty()
	if tp == nil || record == nil {
		return ""
	}
	v := record.Param(tp.Name())
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Validate checks the decorated resource eagerly so configuration
// mistakes surface at boot rather than on first request. It verifies
// the adapter contract (at least one property) and resolves every name
// in every per-context ordering override.
func (r *Resource) Validate() error {
	if len(r.properties) == 0 {
		return fmt.Errorf("resource %q exposes no properties", r.Name())
	}
	for _, where := range Places {
		for _, name := range r.opts.ContextProperties(where) {
			if _, err := r.PropertyByKey(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// JSON builds the full snapshot of the resource for one acting admin.
func (r *Resource) JSON(admin ports.CurrentAdmin) (ResourceJSON, error) {
	tp := r.TitleProperty()
	if tp == nil {
		return ResourceJSON{}, fmt.Errorf("resource %q exposes no properties", r.Name())
	}

	list, err := r.ListProperties()
	if err != nil {
		return ResourceJSON{}, err
	}
	edit, err := r.Properties(PlaceEdit, 0)
	if err != nil {
		return ResourceJSON{}, err
	}
	show, err := r.Properties(PlaceShow, 0)
	if err != nil {
		return ResourceJSON{}, err
	}
	filter, err := r.Properties(PlaceFilter, 0)
	if err != nil {
		return ResourceJSON{}, err
	}

	parent := r.Parent()
	resourceActions := r.ResourceActions(admin)

	out := ResourceJSON{
		ID:               r.ID(),
		Name:             r.Name(),
		Parent:           ParentJSON{Name: parent.Name, Icon: parent.Icon},
		Href:             r.Href(),
		TitleProperty:    tp.JSON(),
		ResourceActions:  make([]ActionJSON, 0, len(resourceActions)),
		ListProperties:   propertiesJSON(list),
		EditProperties:   propertiesJSON(edit),
		ShowProperties:   propertiesJSON(show),
		FilterProperties: propertiesJSON(filter),
	}
	for _, a := range resourceActions {
		out.ResourceActions = append(out.ResourceActions, a.JSON())
	}
	return out, nil
}

// RecordJSON builds the serializable view of one record, including the
// record actions available to the acting admin.
func (r *Resource) RecordJSON(record ports.Record, admin ports.CurrentAdmin) RecordJSON {
	actions := r.RecordActions(record, admin)
	out := RecordJSON{
		ID:            record.ID(),
		Title:         r.TitleOf(record),
		Params:        record.Params(),
		RecordActions: make([]ActionJSON, 0, len(actions)),
	}
	for _, a := range actions {
		out.RecordActions = append(out.RecordActions, a.JSON())
	}
	return out
}

func propertiesJSON(props []*Property) []PropertyJSON {
	out := make([]PropertyJSON, 0, len(props))
	for _, p := range props {
		out = append(out, p.JSON())
	}
	return out
}
