package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/requirement"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func setup(t *testing.T) (*form.State, *validation.Validator) {
	t.Helper()
	def, err := formdef.Default()
	if err != nil {
		t.Fatalf("default form: %v", err)
	}
	engine, err := requirement.New(def)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return form.NewState(def), validation.New(engine)
}

func fill(t *testing.T, state *form.State, values map[string]string) {
	t.Helper()
	for id, value := range values {
		if err := state.Type(id, value); err != nil {
			t.Fatalf("type %s: %v", id, err)
		}
	}
}

func mandatory() map[string]string {
	return map[string]string{
		"firstName":      "Marcelo",
		"lastName":       "Barros",
		"email":          "marcelo.barros@teste.com",
		"open-text-area": "hello",
	}
}

func TestValidate_Success(t *testing.T) {
	state, v := setup(t)
	fill(t, state, mandatory())

	got := v.Validate(state)
	if diff := cmp.Diff(validation.Result{Outcome: validation.OutcomeSuccess}, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if !got.OK() || got.Err() != nil {
		t.Fatalf("expected OK result without error")
	}
}

func TestValidate_MissingEachRequiredField(t *testing.T) {
	for _, missing := range []string{"firstName", "lastName", "email", "open-text-area"} {
		t.Run(missing, func(t *testing.T) {
			state, v := setup(t)
			values := mandatory()
			delete(values, missing)
			fill(t, state, values)

			got := v.Validate(state)
			want := validation.Result{Outcome: validation.OutcomeError, Reason: validation.ReasonMissingField, Field: missing}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
			if !errors.Is(got.Err(), validation.ErrMissingRequiredField) {
				t.Fatalf("expected ErrMissingRequiredField")
			}
		})
	}
}

func TestValidate_EmptyForm(t *testing.T) {
	state, v := setup(t)
	got := v.Validate(state)
	if got.Reason != validation.ReasonMissingField || got.Field != "firstName" {
		t.Fatalf("expected first required field to be reported, got %#v", got)
	}
}

func TestValidate_BadEmail(t *testing.T) {
	state, v := setup(t)
	values := mandatory()
	values["email"] = "marcelo.barros£teste.com"
	fill(t, state, values)

	got := v.Validate(state)
	if got.Reason != validation.ReasonBadEmailFormat || got.Field != "email" {
		t.Fatalf("expected bad email, got %#v", got)
	}
	if !errors.Is(got.Err(), validation.ErrInvalidEmailFormat) {
		t.Fatalf("expected ErrInvalidEmailFormat")
	}
}

func TestValidate_MissingFieldMasksBadEmail(t *testing.T) {
	state, v := setup(t)
	values := mandatory()
	values["email"] = "not-an-email"
	delete(values, "lastName")
	fill(t, state, values)

	if got := v.Validate(state); got.Reason != validation.ReasonMissingField {
		t.Fatalf("expected missing field to win, got %#v", got)
	}
}

func TestValidate_PhoneRequiredByToggle(t *testing.T) {
	state, v := setup(t)
	fill(t, state, mandatory())
	if err := state.Check("phone-checkbox"); err != nil {
		t.Fatalf("check: %v", err)
	}

	got := v.Validate(state)
	if got.Reason != validation.ReasonMissingField || got.Field != "phone" {
		t.Fatalf("expected phone to be missing, got %#v", got)
	}

	_ = state.Type("phone", "987654321")
	if got := v.Validate(state); !got.OK() {
		t.Fatalf("expected success once phone is filled, got %#v", got)
	}

	_ = state.Clear("phone")
	_ = state.Uncheck("phone-checkbox")
	if got := v.Validate(state); !got.OK() {
		t.Fatalf("expected success with toggle off, got %#v", got)
	}
}

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"marcelo.barros@teste.com": true,
		"a@b.co":                   true,
		"a@b.com.br":               true,
		"marcelo.barros£teste.com": false,
		"a@b":                      false,
		"a @b.com":                 false,
		"@b.com":                   false,
		"a@.com":                   false,
		"a@b.":                     false,
		"":                         false,
	}
	for input, want := range cases {
		if got := validation.ValidEmail(input); got != want {
			t.Errorf("ValidEmail(%q): want %v, got %v", input, want, got)
		}
	}
}
