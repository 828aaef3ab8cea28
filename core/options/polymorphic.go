package options

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parent places a resource under a sidebar section. In YAML and JSON a
// parent may be written as a plain string ("Store") or as an object
// ({name: Store, icon: icon-cart}).
type Parent struct {
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (p *Parent) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		p.Name = value.Value
		p.Icon = ""
		return nil
	case yaml.MappingNode:
		type plain Parent
		var v plain
		if err := value.Decode(&v); err != nil {
			return err
		}
		*p = Parent(v)
		return nil
	default:
		return fmt.Errorf("parent: expected string or {name, icon} object, got %s", kindName(value.Kind))
	}
}

// UnmarshalJSON accepts both the string and the object form.
func (p *Parent) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.Name = s
		p.Icon = ""
		return nil
	}
	type plain Parent
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Parent(v)
	return nil
}

// Visibility controls where a property appears. In YAML and JSON it may
// be written as a plain bool (all four contexts at once) or as an
// object toggling individual contexts; omitted contexts keep their
// default.
type Visibility struct {
	List   *bool `yaml:"list,omitempty" json:"list,omitempty"`
	Show   *bool `yaml:"show,omitempty" json:"show,omitempty"`
	Edit   *bool `yaml:"edit,omitempty" json:"edit,omitempty"`
	Filter *bool `yaml:"filter,omitempty" json:"filter,omitempty"`
}

// VisibleEverywhere and HiddenEverywhere are the expanded forms of the
// scalar shorthand.
func VisibleEverywhere() *Visibility { return uniformVisibility(true) }
func HiddenEverywhere() *Visibility  { return uniformVisibility(false) }

func uniformVisibility(v bool) *Visibility {
	b := v
	return &Visibility{List: &b, Show: &b, Edit: &b, Filter: &b}
}

// In resolves visibility for one context. Returns (value, true) when
// the user set that context, (false, false) otherwise.
func (v *Visibility) In(where string) (bool, bool) {
	if v == nil {
		return false, false
	}
	var p *bool
	switch where {
	case "list":
		p = v.List
	case "show":
		p = v.Show
	case "edit":
		p = v.Edit
	case "filter":
		p = v.Filter
	}
	if p == nil {
		return false, false
	}
	return *p, true
}

// UnmarshalYAML accepts both the bool and the mapping form.
func (v *Visibility) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var b bool
		if err := value.Decode(&b); err != nil {
			return fmt.Errorf("isVisible: expected bool or context object: %w", err)
		}
		*v = *uniformVisibility(b)
		return nil
	case yaml.MappingNode:
		type plain Visibility
		var pv plain
		if err := value.Decode(&pv); err != nil {
			return err
		}
		*v = Visibility(pv)
		return nil
	default:
		return fmt.Errorf("isVisible: expected bool or context object, got %s", kindName(value.Kind))
	}
}

// UnmarshalJSON accepts both the bool and the object form.
func (v *Visibility) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = *uniformVisibility(b)
		return nil
	}
	type plain Visibility
	var pv plain
	if err := json.Unmarshal(data, &pv); err != nil {
		return err
	}
	*v = Visibility(pv)
	return nil
}

// kindName names a yaml node kind for error messages.
func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
