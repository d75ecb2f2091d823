package formdef_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/model"
)

func TestDefault_ContactPage(t *testing.T) {
	form, err := formdef.Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}

	if form.Title != "Central de Atendimento ao Cliente TAT" {
		t.Fatalf("unexpected title %q", form.Title)
	}

	names := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	want := []string{
		"firstName", "lastName", "email", "phone", "product", "service-type",
		"email-checkbox", "phone-checkbox", "open-text-area", "file-upload",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	phone, ok := form.Field("phone")
	if !ok {
		t.Fatalf("phone field missing")
	}
	if phone.Required {
		t.Fatalf("phone must not be statically required")
	}
	if phone.RequiredWhen != "phone-checkbox == true" {
		t.Fatalf("unexpected phone rule %q", phone.RequiredWhen)
	}

	radios := form.FieldsOfKind(model.FieldKindRadio)
	if len(radios) != 1 || len(radios[0].Options) != 3 {
		t.Fatalf("expected one radio group with three options, got %#v", radios)
	}
	if len(form.FieldsOfKind(model.FieldKindCheckbox)) != 2 {
		t.Fatalf("expected two checkboxes")
	}
}

func TestLoadFS_JSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json":    {Data: []byte(`{"id":"a","title":"A","fields":[{"name":"x","kind":"text","required":true}]}`)},
		"b.yml":     {Data: []byte("id: b\ntitle: B\nfields:\n  - name: y\n    kind: textarea\n")},
		"notes.txt": {Data: []byte("ignored")},
	}

	store, err := formdef.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	a, err := store.Form("a")
	if err != nil {
		t.Fatalf("form a: %v", err)
	}
	if !a.Fields[0].Required {
		t.Fatalf("expected json field to be required")
	}

	if _, err := store.Form("missing"); !errors.Is(err, formdef.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":        "   ",
		"no id":        "title: x\nfields: []\n",
		"dup field":    "id: f\nfields:\n  - {name: a, kind: text}\n  - {name: a, kind: text}\n",
		"bad kind":     "id: f\nfields:\n  - {name: a, kind: slider}\n",
		"no options":   "id: f\nfields:\n  - {name: a, kind: select}\n",
		"both require": "id: f\nfields:\n  - {name: a, kind: tel, required: true, requiredWhen: b == true}\n",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := formdef.Parse([]byte(doc), "inline.yaml")
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.HasPrefix(err.Error(), "formdef:") {
				t.Fatalf("expected formdef prefix, got %v", err)
			}
		})
	}
}

func TestLoadFS_DuplicateForm(t *testing.T) {
	fsys := fstest.MapFS{
		"one.yaml": {Data: []byte("id: same\nfields: []\n")},
		"two.yaml": {Data: []byte("id: same\nfields: []\n")},
	}
	if _, err := formdef.LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "duplicate form") {
		t.Fatalf("expected duplicate form error, got %v", err)
	}
}
