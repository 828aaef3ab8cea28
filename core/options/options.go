// Package options defines the typed user configuration applied on top of
// adapter-provided resources. Every field is optional; absence always
// falls back to an adapter- or convention-derived default.
//
// Options are read-only after construction. Changing them at runtime
// requires rebuilding the decorators, never mutating options in place.
package options

import "github.com/artpar/admingate/ports"

// ResourceOptions customizes the presentation of one resource.
type ResourceOptions struct {
	// Name overrides the resource display name.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Parent places the resource under a sidebar section. Accepts a
	// plain string (section name) or a {name, icon} object.
	Parent *Parent `yaml:"parent,omitempty" json:"parent,omitempty"`

	// Properties maps property paths to per-property overrides.
	// Paths that do not exist on the resource are synthesized as
	// virtual properties unless they contain a "." separator.
	Properties map[string]PropertyOptions `yaml:"properties,omitempty" json:"properties,omitempty"`

	// ListProperties, when set, is the exact ordered property list for
	// the list context. Same for the other three contexts below.
	ListProperties   []string `yaml:"listProperties,omitempty" json:"listProperties,omitempty"`
	ShowProperties   []string `yaml:"showProperties,omitempty" json:"showProperties,omitempty"`
	EditProperties   []string `yaml:"editProperties,omitempty" json:"editProperties,omitempty"`
	FilterProperties []string `yaml:"filterProperties,omitempty" json:"filterProperties,omitempty"`

	// Actions maps action names to overrides. Known names patch the
	// built-in actions field by field; unknown names declare custom
	// actions.
	Actions map[string]ActionOptions `yaml:"actions,omitempty" json:"actions,omitempty"`
}

// ContextProperties returns the explicit ordering override for a
// context, or nil when the user declared none.
func (o ResourceOptions) ContextProperties(where string) []string {
	switch where {
	case "list":
		return o.ListProperties
	case "show":
		return o.ShowProperties
	case "edit":
		return o.EditProperties
	case "filter":
		return o.FilterProperties
	default:
		return nil
	}
}

// PropertyOptions customizes one property. Nil pointer fields mean
// "no override"; resolution coalesces field by field.
type PropertyOptions struct {
	// Label overrides the humanized display name.
	Label *string `yaml:"label,omitempty" json:"label,omitempty"`

	// IsVisible controls per-context visibility. Accepts a plain bool
	// (all contexts) or a {list, show, edit, filter} object.
	IsVisible *Visibility `yaml:"isVisible,omitempty" json:"isVisible,omitempty"`

	// Position orders properties within a context (ascending).
	Position *int `yaml:"position,omitempty" json:"position,omitempty"`

	// IsTitle marks the property as the record title.
	IsTitle *bool `yaml:"isTitle,omitempty" json:"isTitle,omitempty"`

	// IsSortable overrides adapter-reported sortability.
	IsSortable *bool `yaml:"isSortable,omitempty" json:"isSortable,omitempty"`

	// Type overrides the adapter-reported property type.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
}

// ActionOptions customizes one action, field by field. Predicates can
// only be supplied in code; configuration files control the metadata
// fields.
type ActionOptions struct {
	// Label overrides the action display label.
	Label *string `yaml:"label,omitempty" json:"label,omitempty"`

	// Icon overrides the action icon.
	Icon *string `yaml:"icon,omitempty" json:"icon,omitempty"`

	// Scope sets the action scope ("resource" or "record").
	// Required for custom actions; ignored as nil for built-ins.
	Scope *string `yaml:"scope,omitempty" json:"scope,omitempty"`

	// Guard is a confirmation message shown before execution.
	Guard *string `yaml:"guard,omitempty" json:"guard,omitempty"`

	// Component names the front-end component rendering this action.
	Component *string `yaml:"component,omitempty" json:"component,omitempty"`

	// IsVisible and IsAccessible replace the action's predicates.
	// Code-level only; never populated from YAML.
	IsVisible    func(ports.ActionRequest) bool `yaml:"-" json:"-"`
	IsAccessible func(ports.ActionRequest) bool `yaml:"-" json:"-"`
}
