package model

import "strings"

// FieldKind enumerates the input controls a contact form can carry.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindTel      FieldKind = "tel"
	FieldKindTextArea FieldKind = "textarea"
	FieldKindSelect   FieldKind = "select"
	FieldKindRadio    FieldKind = "radio"
	FieldKindCheckbox FieldKind = "checkbox"
	FieldKindFile     FieldKind = "file"
)

const (
	ValidationRuleEmail     = "email"
	ValidationRuleDigits    = "digits"
	ValidationRuleMaxLength = "maxLength"
)

// ValidationRule represents a single constraint applied to a field. Params
// keep their string form so definitions round-trip through YAML unchanged.
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Option is a selectable choice of a select or radio field. The position of
// the option inside Field.Options is its ordinal index.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Field models an individual control of the form. Required is the static
// flag; RequiredWhen holds a rule evaluated against the current toggles and
// takes over when present.
type Field struct {
	Name         string            `json:"name" yaml:"name"`
	Kind         FieldKind         `json:"kind" yaml:"kind"`
	Label        string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required     bool              `json:"required" yaml:"required"`
	RequiredWhen string            `json:"requiredWhen,omitempty" yaml:"requiredWhen,omitempty"`
	Options      []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	Validations  []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// IsText reports whether the field holds free text typed by the user.
func (f Field) IsText() bool {
	switch f.Kind {
	case FieldKindText, FieldKindEmail, FieldKindTel, FieldKindTextArea:
		return true
	default:
		return false
	}
}

// HasRule reports whether a validation rule of the given kind is attached.
func (f Field) HasRule(kind string) bool {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return true
		}
	}
	return false
}

// FormModel is the top-level description of the page consumed by the state
// model and the renderers.
type FormModel struct {
	ID       string            `json:"id" yaml:"id"`
	Title    string            `json:"title" yaml:"title"`
	Subtitle string            `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Submit   string            `json:"submit,omitempty" yaml:"submit,omitempty"`
	Fields   []Field           `json:"fields" yaml:"fields"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field returns the field registered under name.
func (m FormModel) Field(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldsOfKind returns the fields of the given kind in definition order.
func (m FormModel) FieldsOfKind(kind FieldKind) []Field {
	var out []Field
	for _, field := range m.Fields {
		if field.Kind == kind {
			out = append(out, field)
		}
	}
	return out
}
