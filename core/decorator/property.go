package decorator

import (
	"github.com/artpar/admingate/core/convention"
	"github.com/artpar/admingate/core/options"
	"github.com/artpar/admingate/ports"
)

// Places are the UI contexts a property may appear in.
const (
	PlaceList   = "list"
	PlaceShow   = "show"
	PlaceEdit   = "edit"
	PlaceFilter = "filter"
)

// Places lists all contexts in canonical order.
var Places = []string{PlaceList, PlaceShow, PlaceEdit, PlaceFilter}

// Property wraps one adapter-provided property descriptor together with
// its resolved user options. It is immutable after construction; all
// methods are pure reads.
type Property struct {
	descriptor ports.Property
	opts       options.PropertyOptions

	// index is the property's slot in declaration order. It doubles as
	// the default position so that unconfigured resources keep the
	// adapter's ordering.
	index int
}

// NewProperty decorates a descriptor. index fixes the default ordering
// slot; opts may be the zero value.
func NewProperty(descriptor ports.Property, opts options.PropertyOptions, index int) *Property {
	return &Property{descriptor: descriptor, opts: opts, index: index}
}

// Name is the stable property key, equal to the descriptor path.
func (p *Property) Name() string {
	return p.descriptor.Name()
}

// Label resolves the display label: user override, else humanized name.
func (p *Property) Label() string {
	if p.opts.Label != nil {
		return *p.opts.Label
	}
	return convention.Humanize(p.descriptor.Name())
}

// Type resolves the presentation type: user override, else descriptor.
func (p *Property) Type() ports.PropertyType {
	if p.opts.Type != "" {
		return ports.PropertyType(p.opts.Type)
	}
	if t := p.descriptor.Type(); t != "" {
		return t
	}
	return ports.PropertyTypeString
}

// Position resolves the ordering slot: user override, else declaration
// index. Lower positions sort first.
func (p *Property) Position() int {
	if p.opts.Position != nil {
		return *p.opts.Position
	}
	return p.index
}

// IsID reports whether this property identifies records.
func (p *Property) IsID() bool {
	return p.descriptor.IsID()
}

// IsTitle resolves the title flag: user override, else descriptor.
func (p *Property) IsTitle() bool {
	if p.opts.IsTitle != nil {
		return *p.opts.IsTitle
	}
	return p.descriptor.IsTitle()
}

// IsSortable resolves sortability: user override, else descriptor.
func (p *Property) IsSortable() bool {
	if p.opts.IsSortable != nil {
		return *p.opts.IsSortable
	}
	return p.descriptor.IsSortable()
}

// IsVisible resolves visibility for one context. User overrides win;
// the default shows the property everywhere except that the record
// identifier is not editable.
func (p *Property) IsVisible(where string) bool {
	if v, ok := p.opts.IsVisible.In(where); ok {
		return v
	}
	if where == PlaceEdit && p.descriptor.IsID() {
		return false
	}
	return true
}

// JSON returns the serializable view of the property.
func (p *Property) JSON() PropertyJSON {
	return PropertyJSON{
		Name:       p.Name(),
		Label:      p.Label(),
		Type:       string(p.Type()),
		IsID:       p.IsID(),
		IsTitle:    p.IsTitle(),
		IsSortable: p.IsSortable(),
		Position:   p.Position(),
	}
}

// syntheticProperty backs properties that exist only in user options.
// They carry no adapter metadata and are never sortable.
type syntheticProperty struct {
	name string
}

func (s syntheticProperty) Name() string             { return s.name }
func (s syntheticProperty) Type() ports.PropertyType { return ports.PropertyTypeMixed }
func (s syntheticProperty) IsID() bool               { return false }
func (s syntheticProperty) IsTitle() bool            { return false }
func (s syntheticProperty) IsSortable() bool         { return false }

var _ ports.Property = syntheticProperty{}
