// Package requirement decides which fields are mandatory for a submission.
// Static requirements come from the form definition; conditional ones are
// compiled rules evaluated against an explicit snapshot of checkbox toggles.
package requirement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/requirement/expr"
)

// Toggles is a snapshot of checkbox states keyed by field id.
type Toggles map[string]bool

// Lookup implements expr.Env, exposing toggles as "true"/"false".
func (t Toggles) Lookup(name string) (string, bool) {
	v, ok := t[name]
	if !ok {
		return "", false
	}
	return strconv.FormatBool(v), true
}

// With returns a copy of t with name set to checked.
func (t Toggles) With(name string, checked bool) Toggles {
	out := make(Toggles, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[name] = checked
	return out
}

type entry struct {
	name     string
	required bool
	rule     *expr.Rule
}

// Engine answers requirement questions for one form definition. It holds no
// mutable state once built.
type Engine struct {
	order  []entry
	byName map[string]int
}

// New compiles the requirement rules of form.
func New(form model.FormModel) (*Engine, error) {
	e := &Engine{byName: make(map[string]int, len(form.Fields))}
	for _, field := range form.Fields {
		item := entry{name: field.Name, required: field.Required}
		if src := strings.TrimSpace(field.RequiredWhen); src != "" {
			rule, err := expr.Compile(src)
			if err != nil {
				return nil, fmt.Errorf("requirement: field %q: %w", field.Name, err)
			}
			item.rule = rule
		}
		e.byName[field.Name] = len(e.order)
		e.order = append(e.order, item)
	}
	return e, nil
}

// IsRequired reports whether fieldID is mandatory under toggles. Unknown
// fields are never required.
func (e *Engine) IsRequired(fieldID string, toggles Toggles) bool {
	if e == nil {
		return false
	}
	idx, ok := e.byName[fieldID]
	if !ok {
		return false
	}
	return e.order[idx].evaluate(toggles)
}

// RequiredSet returns the mandatory field ids under toggles in definition
// order.
func (e *Engine) RequiredSet(toggles Toggles) []string {
	if e == nil {
		return nil
	}
	var out []string
	for _, item := range e.order {
		if item.evaluate(toggles) {
			out = append(out, item.name)
		}
	}
	return out
}

// Conditional reports whether fieldID carries a dynamic rule and returns its
// source.
func (e *Engine) Conditional(fieldID string) (string, bool) {
	if e == nil {
		return "", false
	}
	idx, ok := e.byName[fieldID]
	if !ok || e.order[idx].rule.Empty() {
		return "", false
	}
	return e.order[idx].rule.String(), true
}

func (item entry) evaluate(toggles Toggles) bool {
	if !item.rule.Empty() {
		return item.rule.Eval(toggles)
	}
	return item.required
}
