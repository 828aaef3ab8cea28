package decorator

import (
	"github.com/artpar/admingate/core/action"
	"github.com/artpar/admingate/ports"
)

// ActionDecorator binds one action to its resource. Predicates are
// evaluated per request against the acting admin and, for record
// actions, the specific record.
type ActionDecorator struct {
	action   action.Action
	resource *Resource
}

// Name returns the stable action identifier.
func (d *ActionDecorator) Name() string { return d.action.Name }

// Label returns the display label.
func (d *ActionDecorator) Label() string { return d.action.Label }

// Scope returns the action scope.
func (d *ActionDecorator) Scope() action.Scope { return d.action.Scope }

// IsDefault reports whether this is a built-in action.
func (d *ActionDecorator) IsDefault() bool { return d.action.Default }

// IsVisible evaluates the visibility predicate. record may be nil for
// resource-scoped checks.
func (d *ActionDecorator) IsVisible(admin ports.CurrentAdmin, record ports.Record) bool {
	return d.action.Visible(ports.ActionRequest{Admin: admin, Record: record})
}

// IsAccessible evaluates the access predicate. record may be nil for
// resource-scoped checks.
func (d *ActionDecorator) IsAccessible(admin ports.CurrentAdmin, record ports.Record) bool {
	return d.action.Accessible(ports.ActionRequest{Admin: admin, Record: record})
}

// JSON returns the serializable view of the action.
func (d *ActionDecorator) JSON() ActionJSON {
	return ActionJSON{
		Name:      d.action.Name,
		Label:     d.action.Label,
		Icon:      d.action.Icon,
		Scope:     string(d.action.Scope),
		Guard:     d.action.Guard,
		Component: d.action.Component,
	}
}
