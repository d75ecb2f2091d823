package validation

import (
	"errors"
	"regexp"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/requirement"
)

// Outcome is the pass/fail verdict of a submission.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// Reason explains an error outcome.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonMissingField   Reason = "missing-field"
	ReasonBadEmailFormat Reason = "bad-email-format"
)

var (
	// ErrMissingRequiredField marks a submission with an empty mandatory field.
	ErrMissingRequiredField = errors.New("validation: missing required field")
	// ErrInvalidEmailFormat marks a submission whose email is malformed.
	ErrInvalidEmailFormat = errors.New("validation: invalid email format")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)+$`)

// Result is the immutable outcome of a single validation run.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Reason  Reason  `json:"reason,omitempty"`
	Field   string  `json:"field,omitempty"`
}

// OK reports whether the submission passed.
func (r Result) OK() bool { return r.Outcome == OutcomeSuccess }

// Err maps the reason onto its sentinel error, or nil on success.
func (r Result) Err() error {
	switch r.Reason {
	case ReasonMissingField:
		return ErrMissingRequiredField
	case ReasonBadEmailFormat:
		return ErrInvalidEmailFormat
	default:
		return nil
	}
}

// Validator checks that every currently mandatory field is filled and that
// the email is well formed, in that order.
type Validator struct {
	engine *requirement.Engine
}

// New builds a validator over engine.
func New(engine *requirement.Engine) *Validator {
	return &Validator{engine: engine}
}

// Validate evaluates state. Presence checks over all required fields run
// before the email format check, so a missing field masks a bad email.
func (v *Validator) Validate(state *form.State) Result {
	toggles := state.Toggles()
	for _, id := range v.engine.RequiredSet(toggles) {
		if state.Value(id) == "" {
			return Result{Outcome: OutcomeError, Reason: ReasonMissingField, Field: id}
		}
	}

	for _, field := range state.Form().Fields {
		if field.Kind != model.FieldKindEmail && !field.HasRule(model.ValidationRuleEmail) {
			continue
		}
		value := state.Value(field.Name)
		if value != "" && !ValidEmail(value) {
			return Result{Outcome: OutcomeError, Reason: ReasonBadEmailFormat, Field: field.Name}
		}
	}

	return Result{Outcome: OutcomeSuccess}
}

// ValidEmail reports whether value has the conventional local@domain.tld
// shape.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}
