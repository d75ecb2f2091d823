package formdef

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/pkg/model"
)

// DefaultFormID identifies the bundled contact page.
const DefaultFormID = "cac-tat"

var (
	// ErrFormNotFound is returned when a store has no form with the requested id.
	ErrFormNotFound = errors.New("formdef: form not found")
)

// Store holds parsed form definitions keyed by id.
type Store struct {
	forms map[string]model.FormModel
}

// LoadFS walks the provided filesystem and parses JSON/YAML form definition
// files. When fsys is nil the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormModel)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}

		form, err := Parse(data, path)
		if err != nil {
			return err
		}
		if _, exists := store.forms[form.ID]; exists {
			return fmt.Errorf("formdef: duplicate form %q (file %s)", form.ID, path)
		}
		store.forms[form.ID] = form
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Default loads the bundled contact page definition.
func Default() (model.FormModel, error) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		return model.FormModel{}, err
	}
	return store.Form(DefaultFormID)
}

// Form returns the definition registered under id.
func (s *Store) Form(id string) (model.FormModel, error) {
	if s == nil {
		return model.FormModel{}, ErrFormNotFound
	}
	form, ok := s.forms[strings.TrimSpace(id)]
	if !ok {
		return model.FormModel{}, fmt.Errorf("%w: %q", ErrFormNotFound, id)
	}
	return form, nil
}

// IDs lists the loaded form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Parse decodes a single definition document and validates it.
func Parse(data []byte, source string) (model.FormModel, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.FormModel{}, fmt.Errorf("formdef: file %s is empty", source)
	}

	var form model.FormModel
	if err := json.Unmarshal(data, &form); err != nil {
		form = model.FormModel{}
		if err := yaml.Unmarshal(data, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("formdef: parse %s: invalid JSON or YAML", source)
		}
	}

	form.ID = strings.TrimSpace(form.ID)
	if err := validateForm(form); err != nil {
		return model.FormModel{}, fmt.Errorf("formdef: %s: %w", source, err)
	}
	return form, nil
}

func validateForm(form model.FormModel) error {
	if form.ID == "" {
		return errors.New("form id is required")
	}
	seen := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return errors.New("field name is required")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate field %q", name)
		}
		seen[name] = struct{}{}

		switch field.Kind {
		case model.FieldKindText, model.FieldKindEmail, model.FieldKindTel, model.FieldKindTextArea,
			model.FieldKindCheckbox, model.FieldKindFile:
		case model.FieldKindSelect, model.FieldKindRadio:
			if len(field.Options) == 0 {
				return fmt.Errorf("field %q requires options", name)
			}
		default:
			return fmt.Errorf("field %q has unsupported kind %q", name, field.Kind)
		}
		if field.Required && strings.TrimSpace(field.RequiredWhen) != "" {
			return fmt.Errorf("field %q sets both required and requiredWhen", name)
		}
	}
	return nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
