package submission_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/attachment"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/submission"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func filledState(t *testing.T) *form.State {
	t.Helper()
	def, err := formdef.Default()
	if err != nil {
		t.Fatalf("default form: %v", err)
	}
	state := form.NewState(def)
	_ = state.Type("firstName", "Marcelo")
	_ = state.Type("lastName", "Barros")
	_ = state.Type("email", "marcelo.barros@teste.com")
	_ = state.Type("open-text-area", "<script>alert(1)</script>Olá <b>mundo</b> & cia")
	_, _ = state.SelectByLabel("product", "YouTube")
	_ = state.Check("service-type", "feedback")
	_ = state.Check("email-checkbox")
	_ = state.SelectFile("file-upload", attachment.File{Name: "example.json"})
	return state
}

func TestBuild(t *testing.T) {
	payload, err := submission.Build(filledState(t), validation.Result{Outcome: validation.OutcomeSuccess})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := submission.Payload{
		"firstName":      "Marcelo",
		"lastName":       "Barros",
		"email":          "marcelo.barros@teste.com",
		"open-text-area": "Olá mundo & cia",
		"product":        "youtube",
		"service-type":   "feedback",
		"email-checkbox": "true",
		"file-upload":    "example.json",
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_RejectsFailedResult(t *testing.T) {
	_, err := submission.Build(filledState(t), validation.Result{Outcome: validation.OutcomeError, Reason: validation.ReasonMissingField})
	if !errors.Is(err, submission.ErrNotValid) {
		t.Fatalf("expected ErrNotValid, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	p := submission.Payload{"lastName": "Barros", "firstName": "Marcelo Z"}

	encoded, err := submission.Encode(p, submission.FormatFormURLEncoded)
	if err != nil {
		t.Fatalf("encode form: %v", err)
	}
	if string(encoded) != "firstName=Marcelo+Z&lastName=Barros" {
		t.Fatalf("unexpected form encoding %q", encoded)
	}

	js, err := submission.Encode(p, submission.FormatJSON)
	if err != nil {
		t.Fatalf("encode json: %v", err)
	}
	want := "{\n  \"firstName\": \"Marcelo Z\",\n  \"lastName\": \"Barros\"\n}"
	if string(js) != want {
		t.Fatalf("unexpected json %q", js)
	}

	if _, err := submission.Encode(p, "xml"); !errors.Is(err, submission.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestSanitize(t *testing.T) {
	if got := submission.Sanitize("  <i>hi</i>  "); got != "hi" {
		t.Fatalf("unexpected sanitized text %q", got)
	}
	if got := submission.Sanitize("   "); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
