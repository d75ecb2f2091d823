package requirement_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/requirement"
)

func newEngine(t *testing.T) *requirement.Engine {
	t.Helper()
	form, err := formdef.Default()
	if err != nil {
		t.Fatalf("default form: %v", err)
	}
	engine, err := requirement.New(form)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_StaticRequirements(t *testing.T) {
	engine := newEngine(t)
	toggles := requirement.Toggles{}

	for _, id := range []string{"firstName", "lastName", "email", "open-text-area"} {
		if !engine.IsRequired(id, toggles) {
			t.Fatalf("expected %s to be required", id)
		}
	}
	for _, id := range []string{"phone", "product", "service-type", "email-checkbox", "phone-checkbox", "file-upload", "unknown"} {
		if engine.IsRequired(id, toggles) {
			t.Fatalf("expected %s to be optional", id)
		}
	}
}

func TestEngine_PhoneToggleOnlyAffectsPhone(t *testing.T) {
	engine := newEngine(t)
	off := requirement.Toggles{"phone-checkbox": false}
	on := off.With("phone-checkbox", true)

	if engine.IsRequired("phone", off) {
		t.Fatalf("phone must be optional with the toggle off")
	}
	if !engine.IsRequired("phone", on) {
		t.Fatalf("phone must be required with the toggle on")
	}
	if off["phone-checkbox"] {
		t.Fatalf("With must not mutate the receiver")
	}

	before := engine.RequiredSet(off)
	after := engine.RequiredSet(on)
	wantBefore := []string{"firstName", "lastName", "email", "open-text-area"}
	wantAfter := []string{"firstName", "lastName", "email", "phone", "open-text-area"}
	if diff := cmp.Diff(wantBefore, before); diff != "" {
		t.Fatalf("required set (off) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantAfter, after); diff != "" {
		t.Fatalf("required set (on) mismatch (-want +got):\n%s", diff)
	}

	rule, ok := engine.Conditional("phone")
	if !ok || rule != "phone-checkbox == true" {
		t.Fatalf("unexpected conditional rule %q (%v)", rule, ok)
	}
	if _, ok := engine.Conditional("firstName"); ok {
		t.Fatalf("firstName has no conditional rule")
	}
}

func TestNew_InvalidRule(t *testing.T) {
	form := model.FormModel{
		ID: "broken",
		Fields: []model.Field{
			{Name: "phone", Kind: model.FieldKindTel, RequiredWhen: "phone-checkbox = true"},
		},
	}
	_, err := requirement.New(form)
	if err == nil || !strings.Contains(err.Error(), `requirement: field "phone"`) {
		t.Fatalf("expected wrapped rule error, got %v", err)
	}
}
