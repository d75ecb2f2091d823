package page

import (
	"fmt"
	"io"
	"io/fs"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/banner"
	"github.com/goliatone/go-contactform/pkg/messages"
	"github.com/goliatone/go-contactform/pkg/model"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templateFS   fs.FS
	templatesDir string
	templates    TemplateRenderer
	locale       string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk instead of the
// bundled ones.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = path
	}
}

// WithTemplateRenderer injects a custom template renderer.
func WithTemplateRenderer(renderer TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithLocale sets the document language of every rendered page.
func WithLocale(locale string) Option {
	return func(cfg *config) {
		if locale != "" {
			cfg.locale = locale
		}
	}
}

// Renderer produces index.html and privacy.html.
type Renderer struct {
	templates TemplateRenderer
}

// New constructs a Renderer over the bundled templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := config{locale: messages.DefaultLocale.String()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.templates
	if renderer == nil {
		source := WithFS(TemplatesFS())
		switch {
		case cfg.templatesDir != "":
			source = WithBaseDir(cfg.templatesDir)
		case cfg.templateFS != nil:
			source = WithFS(cfg.templateFS)
		}
		engine, err := NewEngine(source, WithGlobalData(map[string]any{"lang": cfg.locale}))
		if err != nil {
			return nil, fmt.Errorf("page renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer}, nil
}

// Render writes the contact page for view.
func (r *Renderer) Render(view View, out ...io.Writer) (string, error) {
	if r == nil || r.templates == nil {
		return "", fmt.Errorf("page renderer: template renderer is nil")
	}
	html, err := r.templates.RenderTemplate(IndexTemplate, view, out...)
	if err != nil {
		return "", fmt.Errorf("page renderer: render index: %w", err)
	}
	return html, nil
}

// RenderPrivacy writes the privacy policy page.
func (r *Renderer) RenderPrivacy(view PrivacyView, out ...io.Writer) (string, error) {
	if r == nil || r.templates == nil {
		return "", fmt.Errorf("page renderer: template renderer is nil")
	}
	html, err := r.templates.RenderTemplate(PrivacyTemplate, view, out...)
	if err != nil {
		return "", fmt.Errorf("page renderer: render privacy: %w", err)
	}
	return html, nil
}

// View is the template data for the contact page.
type View struct {
	Title    string       `json:"title"`
	FormID   string       `json:"form_id"`
	Submit   string       `json:"submit"`
	Heading  ElementView  `json:"title_el"`
	Subtitle ElementView  `json:"subtitle"`
	Cat      ElementView  `json:"cat"`
	Fields   []FieldView  `json:"fields"`
	Banners  []BannerView `json:"banners"`
	Privacy  LinkView     `json:"privacy"`
}

// ElementView is a decorative element.
type ElementView struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Visible bool   `json:"visible"`
}

// FieldView is one form control.
type FieldView struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder,omitempty"`
	Required    bool         `json:"required"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Options     []OptionView `json:"options,omitempty"`
}

// OptionView is a select or radio option.
type OptionView struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// BannerView is one of the two feedback banners.
type BannerView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Visible bool   `json:"visible"`
}

// LinkView is the privacy anchor.
type LinkView struct {
	Label string     `json:"label"`
	Attrs []AttrView `json:"attrs"`
}

// AttrView is a single HTML attribute.
type AttrView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PrivacyView is the template data for the privacy page.
type PrivacyView struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ViewOf captures the current state of p.
func ViewOf(p *contactform.Page) View {
	def := p.Form()
	state := p.State()
	toggles := state.Toggles()
	current := p.Banner().State()

	view := View{
		Title:  p.Title(),
		FormID: def.ID,
		Submit: def.Submit,
	}
	if el, ok := p.Element(contactform.ElementTitle); ok {
		view.Heading = elementView(el)
	}
	if el, ok := p.Element(contactform.ElementSubtitle); ok {
		view.Subtitle = elementView(el)
	}
	if el, ok := p.Element(contactform.ElementCat); ok {
		view.Cat = elementView(el)
	}

	for _, field := range def.Fields {
		fv := FieldView{
			ID:          field.Name,
			Kind:        string(field.Kind),
			Label:       field.Label,
			Placeholder: field.Placeholder,
			Required:    p.Requirements().IsRequired(field.Name, toggles),
			Value:       state.Value(field.Name),
			Checked:     state.Checked(field.Name),
		}
		for _, opt := range field.Options {
			fv.Options = append(fv.Options, OptionView{
				Label:    opt.Label,
				Value:    opt.Value,
				Selected: fieldSelected(field, fv.Value, opt),
			})
		}
		view.Fields = append(view.Fields, fv)
	}

	for _, kind := range []banner.Kind{banner.KindSuccess, banner.KindError} {
		view.Banners = append(view.Banners, BannerView{
			Kind:    string(kind),
			Message: p.BannerMessage(kind),
			Visible: current.Visible && current.Kind == kind,
		})
	}

	link := p.Privacy()
	view.Privacy.Label = link.Label
	for _, attr := range link.Attrs() {
		view.Privacy.Attrs = append(view.Privacy.Attrs, AttrView{Name: attr[0], Value: attr[1]})
	}
	return view
}

// PrivacyViewOf returns the privacy page in the locale of p.
func PrivacyViewOf(p *contactform.Page) PrivacyView {
	return PrivacyView{
		Title: p.Message(messages.PrivacyTitle),
		Body:  p.Message(messages.PrivacyBody),
	}
}

func elementView(el *contactform.Element) ElementView {
	return ElementView{ID: el.ID, Text: el.Text(), Visible: el.Visible()}
}

func fieldSelected(field model.Field, value string, opt model.Option) bool {
	switch field.Kind {
	case model.FieldKindSelect, model.FieldKindRadio:
		return value == opt.Value && (value != "" || field.Kind == model.FieldKindSelect)
	default:
		return false
	}
}
