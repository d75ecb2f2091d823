// Package submission builds the payload sent after a successful validation.
// Free text is stripped of markup with a strict bluemonday policy before it
// leaves the page.
package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Format controls how a payload is serialized.
type Format string

const (
	// FormatJSON emits application/json payloads.
	FormatJSON Format = "json"
	// FormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	FormatFormURLEncoded Format = "form"
)

var (
	// ErrNotValid is returned when building a payload from a failed result.
	ErrNotValid = errors.New("submission: result is not a success")
	// ErrUnknownFormat is returned by Encode for unsupported formats.
	ErrUnknownFormat = errors.New("submission: unknown format")
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Payload maps field ids to submitted values.
type Payload map[string]string

// Build collects the non-empty values of state. result must be a success.
func Build(state *form.State, result validation.Result) (Payload, error) {
	if !result.OK() {
		return nil, fmt.Errorf("%w: %s", ErrNotValid, result.Reason)
	}

	out := make(Payload)
	for _, field := range state.Form().Fields {
		switch field.Kind {
		case model.FieldKindCheckbox:
			if state.Checked(field.Name) {
				out[field.Name] = "true"
			}
		case model.FieldKindFile:
			if file, ok := state.File(field.Name); ok && !file.Empty() {
				out[field.Name] = file.Name
			}
		case model.FieldKindTextArea, model.FieldKindText:
			if v := Sanitize(state.Value(field.Name)); v != "" {
				out[field.Name] = v
			}
		default:
			if v := state.Value(field.Name); v != "" {
				out[field.Name] = v
			}
		}
	}
	return out, nil
}

// Sanitize strips every HTML element from text and trims it.
func Sanitize(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	// bluemonday escapes entities; the payload carries plain text
	return strings.TrimSpace(html.UnescapeString(strictPolicy().Sanitize(trimmed)))
}

// Encode serializes p in format.
func Encode(p Payload, format Format) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		return json.MarshalIndent(p, "", "  ")
	case FormatFormURLEncoded:
		values := url.Values{}
		for _, key := range p.Keys() {
			values.Set(key, p[key])
		}
		return []byte(values.Encode()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Keys returns the payload keys sorted.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func strictPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}
