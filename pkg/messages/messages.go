// Package messages localizes the user-facing copy of the contact page
// (banner texts, validation details, CLI output) with go-i18n bundles loaded
// from embedded TOML files.
package messages

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message ids shared by the packages that render copy.
const (
	BannerSuccess      = "banner_success"
	BannerError        = "banner_error"
	MissingField       = "missing_field"
	BadEmailFormat     = "bad_email_format"
	PrivacyTitle       = "privacy_title"
	PrivacyBody        = "privacy_body"
	ReachabilityOK     = "reachability_ok"
	ReachabilityFailed = "reachability_failed"
	TUIFilePrompt      = "tui_file_prompt"
	TUISubmitPrompt    = "tui_submit_prompt"
)

// DefaultLocale is the language of the original page.
var DefaultLocale = language.BrazilianPortuguese

// ErrMissingTranslation is returned when no bundle language has the key.
var ErrMissingTranslation = errors.New("messages: missing translation")

//go:embed locales/*.toml
var embeddedLocales embed.FS

// Translator resolves a message key for a locale. Optional args are template
// data: either a single map[string]any or alternating key/value pairs.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Catalog is a Translator backed by a go-i18n bundle.
type Catalog struct {
	bundle   *i18n.Bundle
	fallback *i18n.Localizer
}

// New loads the embedded locales plus any extra TOML message files found in
// extra (files named active.<lang>.toml).
func New(extra ...fs.FS) (*Catalog, error) {
	bundle := i18n.NewBundle(DefaultLocale)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	sources := append([]fs.FS{embeddedLocales}, extra...)
	for _, fsys := range sources {
		if fsys == nil {
			continue
		}
		files, err := fs.Glob(fsys, "locales/active.*.toml")
		if err != nil {
			return nil, fmt.Errorf("messages: glob locales: %w", err)
		}
		if len(files) == 0 {
			files, _ = fs.Glob(fsys, "active.*.toml")
		}
		for _, file := range files {
			data, err := fs.ReadFile(fsys, file)
			if err != nil {
				return nil, fmt.Errorf("messages: read %s: %w", file, err)
			}
			if _, err := bundle.ParseMessageFileBytes(data, path.Base(file)); err != nil {
				return nil, fmt.Errorf("messages: parse %s: %w", file, err)
			}
		}
	}

	return &Catalog{
		bundle:   bundle,
		fallback: i18n.NewLocalizer(bundle, DefaultLocale.String()),
	}, nil
}

// MustNew is New for package-level defaults; it panics when the embedded
// locales are broken.
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// Languages lists the locales present in the bundle.
func (c *Catalog) Languages() []string {
	tags := c.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// Supports reports whether locale matches one of the bundle languages.
func (c *Catalog) Supports(locale string) bool {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return false
	}
	for _, candidate := range c.bundle.LanguageTags() {
		if candidate == tag {
			return true
		}
		base, _ := tag.Base()
		candidateBase, _ := candidate.Base()
		if base == candidateBase {
			return true
		}
	}
	return false
}

// Translate implements Translator. Keys missing in locale fall back to the
// default locale before failing.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrMissingTranslation
	}
	cfg := &i18n.LocalizeConfig{MessageID: key, TemplateData: templateData(args)}

	localizer := i18n.NewLocalizer(c.bundle, strings.TrimSpace(locale), DefaultLocale.String())
	msg, err := localizer.Localize(cfg)
	if err == nil {
		return msg, nil
	}
	msg, fallbackErr := c.fallback.Localize(cfg)
	if fallbackErr == nil {
		return msg, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

// Text translates key and returns the key itself when no translation exists.
func (c *Catalog) Text(locale, key string, args ...any) string {
	msg, err := c.Translate(locale, key, args...)
	if err != nil {
		return key
	}
	return msg
}

func templateData(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	if len(args) == 1 {
		if m, ok := args[0].(map[string]any); ok {
			return m
		}
	}
	out := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		out[fmt.Sprint(args[i])] = args[i+1]
	}
	return out
}
