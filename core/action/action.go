// Package action defines the operations exposed on admin resources.
// CRUD-style actions (list, new, show, edit, delete) are built in.
// Custom actions are declared through resource options.
//
// Only action metadata and predicates live here; executing an action is
// the job of the host application's handler layer.
package action

import (
	"github.com/artpar/admingate/core/convention"
	"github.com/artpar/admingate/core/options"
	"github.com/artpar/admingate/ports"
)

// Scope determines whether an action applies to a whole resource or to
// one record.
type Scope string

const (
	// ScopeResource actions operate on the resource as a whole (list, new).
	ScopeResource Scope = "resource"

	// ScopeRecord actions operate on a single record (show, edit, delete).
	ScopeRecord Scope = "record"
)

// Predicate decides action visibility or accessibility for a request.
// A nil Predicate always allows.
type Predicate func(req ports.ActionRequest) bool

// Action is one operation offered on a resource.
type Action struct {
	// Name is the stable action identifier used in URLs.
	Name string

	// Label is the display label shown by the front end.
	Label string

	// Icon names the action icon.
	Icon string

	// Scope determines resource-level vs record-level application.
	Scope Scope

	// Guard is a confirmation message for destructive actions.
	Guard string

	// Component names the front-end component rendering this action.
	Component string

	// IsVisible controls whether the action is shown at all.
	IsVisible Predicate

	// IsAccessible controls whether the acting admin may execute it.
	IsAccessible Predicate

	// Default marks built-in actions.
	Default bool
}

// Visible evaluates the visibility predicate; nil allows.
func (a Action) Visible(req ports.ActionRequest) bool {
	if a.IsVisible == nil {
		return true
	}
	return a.IsVisible(req)
}

// Accessible evaluates the access predicate; nil allows.
func (a Action) Accessible(req ports.ActionRequest) bool {
	if a.IsAccessible == nil {
		return true
	}
	return a.IsAccessible(req)
}

// Defaults returns the built-in action set in declaration order.
// The result is a fresh slice each call; callers may modify it.
func Defaults() []Action {
	return []Action{
		{
			Name:    "list",
			Label:   "List",
			Icon:    "icon-list",
			Scope:   ScopeResource,
			Default: true,
		},
		{
			Name:    "new",
			Label:   "New",
			Icon:    "icon-add",
			Scope:   ScopeResource,
			Default: true,
		},
		{
			Name:    "show",
			Label:   "Show",
			Icon:    "icon-eye",
			Scope:   ScopeRecord,
			Default: true,
		},
		{
			Name:    "edit",
			Label:   "Edit",
			Icon:    "icon-edit",
			Scope:   ScopeRecord,
			Default: true,
		},
		{
			Name:    "delete",
			Label:   "Delete",
			Icon:    "icon-trash",
			Scope:   ScopeRecord,
			Guard:   "Do you really want to remove this item?",
			Default: true,
		},
	}
}

// IsDefault returns true if the action name is a built-in action.
func IsDefault(name string) bool {
	switch name {
	case "list", "new", "show", "edit", "delete":
		return true
	default:
		return false
	}
}

// Apply merges user options onto an action, field by field. Unset
// option fields keep the action's current value; there is no wholesale
// replacement.
func (a Action) Apply(opts options.ActionOptions) Action {
	if opts.Label != nil {
		a.Label = *opts.Label
	}
	if opts.Icon != nil {
		a.Icon = *opts.Icon
	}
	if opts.Scope != nil {
		a.Scope = Scope(*opts.Scope)
	}
	if opts.Guard != nil {
		a.Guard = *opts.Guard
	}
	if opts.Component != nil {
		a.Component = *opts.Component
	}
	if opts.IsVisible != nil {
		a.IsVisible = opts.IsVisible
	}
	if opts.IsAccessible != nil {
		a.IsAccessible = opts.IsAccessible
	}
	return a
}

// FromOptions builds a custom action named name from user options.
// Missing metadata falls back to conventions: humanized label, record
// scope, no icon, always-allowing predicates.
func FromOptions(name string, opts options.ActionOptions) Action {
	a := Action{
		Name:  name,
		Label: convention.Humanize(name),
		Scope: ScopeRecord,
	}
	return a.Apply(opts)
}
