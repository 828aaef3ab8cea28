package action

import (
	"testing"

	"github.com/artpar/admingate/core/options"
	"github.com/artpar/admingate/ports"
)

func TestDefaults(t *testing.T) {
	defaults := Defaults()

	expected := []struct {
		name  string
		scope Scope
	}{
		{"list", ScopeResource},
		{"new", ScopeResource},
		{"show", ScopeRecord},
		{"edit", ScopeRecord},
		{"delete", ScopeRecord},
	}

	if len(defaults) != len(expected) {
		t.Fatalf("Defaults() has %d actions, want %d", len(defaults), len(expected))
	}

	for i, e := range expected {
		got := defaults[i]
		if got.Name != e.name {
			t.Errorf("action[%d].Name = %q, want %q", i, got.Name, e.name)
		}
		if got.Scope != e.scope {
			t.Errorf("action[%d].Scope = %q, want %q", i, got.Scope, e.scope)
		}
		if !got.Default {
			t.Errorf("action[%d] not marked Default", i)
		}
	}
}

func TestDefaultsIsFresh(t *testing.T) {
	first := Defaults()
	first[0].Label = "mutated"

	second := Defaults()
	if second[0].Label != "List" {
		t.Errorf("Defaults() shares state across calls: label = %q", second[0].Label)
	}
}

func TestIsDefault(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"list", true},
		{"new", true},
		{"show", true},
		{"edit", true},
		{"delete", true},
		{"publish", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDefault(tt.name); got != tt.expected {
				t.Errorf("IsDefault(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestApplyMergesFieldByField(t *testing.T) {
	label := "Remove"
	base := Action{
		Name:  "delete",
		Label: "Delete",
		Icon:  "icon-trash",
		Scope: ScopeRecord,
		Guard: "Do you really want to remove this item?",
		IsAccessible: func(req ports.ActionRequest) bool {
			return req.Admin.Role == "admin"
		},
	}

	merged := base.Apply(options.ActionOptions{Label: &label})

	if merged.Label != "Remove" {
		t.Errorf("Label = %q, want %q", merged.Label, "Remove")
	}
	if merged.Scope != ScopeRecord {
		t.Errorf("Scope changed to %q", merged.Scope)
	}
	if merged.Icon != "icon-trash" {
		t.Errorf("Icon changed to %q", merged.Icon)
	}
	if merged.Guard == "" {
		t.Error("Guard lost in merge")
	}
	if merged.IsAccessible == nil {
		t.Fatal("IsAccessible lost in merge")
	}
	if merged.Accessible(ports.ActionRequest{Admin: ports.CurrentAdmin{Role: "viewer"}}) {
		t.Error("merged access predicate no longer enforced")
	}
}

func TestApplyReplacesPredicates(t *testing.T) {
	base := Action{Name: "edit", Scope: ScopeRecord}
	deny := func(ports.ActionRequest) bool { return false }

	merged := base.Apply(options.ActionOptions{IsVisible: deny})

	if merged.Visible(ports.ActionRequest{}) {
		t.Error("override visibility predicate not applied")
	}
	if !merged.Accessible(ports.ActionRequest{}) {
		t.Error("nil access predicate should allow")
	}
}

func TestFromOptions(t *testing.T) {
	scope := "resource"
	icon := "icon-upload"

	a := FromOptions("publishAll", options.ActionOptions{
		Scope: &scope,
		Icon:  &icon,
	})

	if a.Name != "publishAll" {
		t.Errorf("Name = %q", a.Name)
	}
	if a.Label != "Publish All" {
		t.Errorf("Label = %q, want %q", a.Label, "Publish All")
	}
	if a.Scope != ScopeResource {
		t.Errorf("Scope = %q, want resource", a.Scope)
	}
	if a.Icon != "icon-upload" {
		t.Errorf("Icon = %q", a.Icon)
	}
	if a.Default {
		t.Error("custom action marked Default")
	}
}

func TestFromOptionsDefaultsToRecordScope(t *testing.T) {
	a := FromOptions("approve", options.ActionOptions{})
	if a.Scope != ScopeRecord {
		t.Errorf("Scope = %q, want record", a.Scope)
	}
}

func TestNilPredicatesAllow(t *testing.T) {
	a := Action{Name: "show"}
	req := ports.ActionRequest{}
	if !a.Visible(req) {
		t.Error("nil visibility predicate should allow")
	}
	if !a.Accessible(req) {
		t.Error("nil access predicate should allow")
	}
}
