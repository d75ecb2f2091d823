// Package form holds the mutable state of a contact page session: what the
// user typed, selected, checked and attached. State is not safe for
// concurrent use; UI events are applied one at a time by the caller.
package form

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-contactform/pkg/attachment"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/requirement"
)

var (
	// ErrUnknownField is returned for ids that are not part of the definition.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrKindMismatch is returned when an operation does not apply to the field kind.
	ErrKindMismatch = errors.New("form: operation not supported for field kind")
	// ErrOptionNotFound is returned when a select/radio choice cannot be resolved.
	ErrOptionNotFound = errors.New("form: option not found")
)

// State maps field ids to their current values.
type State struct {
	form    model.FormModel
	index   map[string]int
	values  map[string]string
	checked map[string]bool
	files   map[string]attachment.File
}

// NewState returns an empty state for form.
func NewState(form model.FormModel) *State {
	s := &State{
		form:  form,
		index: make(map[string]int, len(form.Fields)),
	}
	for i, field := range form.Fields {
		s.index[field.Name] = i
	}
	s.Reset()
	return s
}

// Reset clears every value, as a page reload would.
func (s *State) Reset() {
	s.values = make(map[string]string)
	s.checked = make(map[string]bool)
	s.files = make(map[string]attachment.File)
}

// Form returns the definition backing the state.
func (s *State) Form() model.FormModel { return s.form }

// Field returns the definition of id.
func (s *State) Field(id string) (model.Field, error) {
	idx, ok := s.index[id]
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	return s.form.Fields[idx], nil
}

// Type appends text to a text-like field one keystroke at a time. Telephone
// fields drop every keystroke that is not a digit.
func (s *State) Type(id, text string) error {
	field, err := s.textField(id)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(s.values[id])
	for _, r := range text {
		if acceptsKey(field, r) {
			b.WriteRune(r)
		}
	}
	s.values[id] = b.String()
	return nil
}

// SetValue replaces the value of a text-like field wholesale. Telephone
// fields still only keep digits.
func (s *State) SetValue(id, value string) error {
	if _, err := s.textField(id); err != nil {
		return err
	}
	s.values[id] = ""
	return s.Type(id, value)
}

// Clear resets a text-like field to the empty string.
func (s *State) Clear(id string) error {
	if _, err := s.textField(id); err != nil {
		return err
	}
	s.values[id] = ""
	return nil
}

// Value returns the current value of id. Select and radio fields report the
// chosen option value; other kinds report "".
func (s *State) Value(id string) string {
	return s.values[id]
}

// SelectByLabel chooses the option of a select field whose visible label is
// label.
func (s *State) SelectByLabel(id, label string) (string, error) {
	return s.selectOption(id, func(i int, opt model.Option) bool { return opt.Label == label })
}

// SelectByValue chooses the option of a select field with the given value.
func (s *State) SelectByValue(id, value string) (string, error) {
	return s.selectOption(id, func(i int, opt model.Option) bool { return opt.Value == value })
}

// SelectByIndex chooses the option at ordinal position index.
func (s *State) SelectByIndex(id string, index int) (string, error) {
	return s.selectOption(id, func(i int, _ model.Option) bool { return i == index })
}

// Select accepts either a label or a value, the way a user types a choice.
// Labels win when both match different options.
func (s *State) Select(id, choice string) (string, error) {
	if v, err := s.SelectByLabel(id, choice); err == nil {
		return v, nil
	}
	return s.SelectByValue(id, choice)
}

func (s *State) selectOption(id string, match func(int, model.Option) bool) (string, error) {
	field, err := s.Field(id)
	if err != nil {
		return "", err
	}
	if field.Kind != model.FieldKindSelect {
		return "", fmt.Errorf("%w: select on %s field %q", ErrKindMismatch, field.Kind, id)
	}
	for i, opt := range field.Options {
		if match(i, opt) {
			s.values[id] = opt.Value
			return opt.Value, nil
		}
	}
	return "", fmt.Errorf("%w: field %q", ErrOptionNotFound, id)
}

// Check marks a checkbox as checked, or selects value inside a radio group.
// For checkboxes value is ignored.
func (s *State) Check(id string, value ...string) error {
	field, err := s.Field(id)
	if err != nil {
		return err
	}
	switch field.Kind {
	case model.FieldKindCheckbox:
		s.checked[id] = true
		return nil
	case model.FieldKindRadio:
		if len(value) == 0 {
			return fmt.Errorf("%w: radio group %q needs a value", ErrOptionNotFound, id)
		}
		for _, opt := range field.Options {
			if opt.Value == value[0] {
				s.values[id] = opt.Value
				return nil
			}
		}
		return fmt.Errorf("%w: field %q value %q", ErrOptionNotFound, id, value[0])
	default:
		return fmt.Errorf("%w: check on %s field %q", ErrKindMismatch, field.Kind, id)
	}
}

// Uncheck clears a checkbox. Radio options cannot be unchecked directly.
func (s *State) Uncheck(id string) error {
	field, err := s.Field(id)
	if err != nil {
		return err
	}
	if field.Kind != model.FieldKindCheckbox {
		return fmt.Errorf("%w: uncheck on %s field %q", ErrKindMismatch, field.Kind, id)
	}
	s.checked[id] = false
	return nil
}

// Checked reports whether a checkbox is checked, or for a radio group
// reference "group=value", whether that option is the selected one.
func (s *State) Checked(id string) bool {
	if group, value, ok := strings.Cut(id, "="); ok {
		return s.values[group] != "" && s.values[group] == value
	}
	return s.checked[id]
}

// Toggles returns a snapshot of every checkbox in the form.
func (s *State) Toggles() requirement.Toggles {
	out := make(requirement.Toggles)
	for _, field := range s.form.Fields {
		if field.Kind == model.FieldKindCheckbox {
			out[field.Name] = s.checked[field.Name]
		}
	}
	return out
}

// SelectFile attaches file to a file input.
func (s *State) SelectFile(id string, file attachment.File) error {
	field, err := s.Field(id)
	if err != nil {
		return err
	}
	if field.Kind != model.FieldKindFile {
		return fmt.Errorf("%w: select file on %s field %q", ErrKindMismatch, field.Kind, id)
	}
	s.files[id] = file
	s.values[id] = file.Name
	return nil
}

// File returns the file attached to id, if any.
func (s *State) File(id string) (attachment.File, bool) {
	f, ok := s.files[id]
	return f, ok
}

// Values returns a copy of every non-empty value including checked boxes
// (reported as "true"), keyed by field id.
func (s *State) Values() map[string]string {
	out := make(map[string]string, len(s.values)+len(s.checked))
	for k, v := range s.values {
		if v != "" {
			out[k] = v
		}
	}
	for k, v := range s.checked {
		if v {
			out[k] = "true"
		}
	}
	return out
}

func (s *State) textField(id string) (model.Field, error) {
	field, err := s.Field(id)
	if err != nil {
		return model.Field{}, err
	}
	if !field.IsText() {
		return model.Field{}, fmt.Errorf("%w: type on %s field %q", ErrKindMismatch, field.Kind, id)
	}
	return field, nil
}

func acceptsKey(field model.Field, r rune) bool {
	if field.Kind == model.FieldKindTel || field.HasRule(model.ValidationRuleDigits) {
		return r >= '0' && r <= '9'
	}
	return unicode.IsPrint(r) || unicode.IsSpace(r)
}
