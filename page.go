package contactform

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/attachment"
	"github.com/goliatone/go-contactform/pkg/banner"
	"github.com/goliatone/go-contactform/pkg/clock"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/messages"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/privacy"
	"github.com/goliatone/go-contactform/pkg/requirement"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Ids of the decorative elements every page carries.
const (
	ElementTitle    = "title"
	ElementSubtitle = "subtitle"
	ElementCat      = "cat"
)

// ErrNoFileInput is returned by SelectFile when the form has no file field.
var ErrNoFileInput = errors.New("contactform: form has no file input")

// Page is one browsing session of the contact page.
type Page struct {
	form       model.FormModel
	state      *form.State
	engine     *requirement.Engine
	validator  *validation.Validator
	banner     *banner.Banner
	privacy    *privacy.Link
	files      *attachment.Selector
	elements   map[string]*Element
	translator messages.Translator
	locale     string
	logger     *zap.Logger
}

// New builds a page from the bundled definition unless WithForm is given.
func New(opts ...Option) (*Page, error) {
	cfg := config{
		clock:          clock.Real(),
		locale:         messages.DefaultLocale.String(),
		bannerDuration: banner.DefaultDuration,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var def model.FormModel
	if cfg.form != nil {
		def = *cfg.form
	} else {
		loaded, err := formdef.Default()
		if err != nil {
			return nil, fmt.Errorf("contactform: load definition: %w", err)
		}
		def = loaded
	}

	engine, err := requirement.New(def)
	if err != nil {
		return nil, fmt.Errorf("contactform: %w", err)
	}

	if cfg.translator == nil {
		catalog, err := messages.New()
		if err != nil {
			return nil, fmt.Errorf("contactform: %w", err)
		}
		cfg.translator = catalog
	}
	if cfg.fixtures == nil {
		cfg.fixtures = os.DirFS(".")
	}

	p := &Page{
		form:       def,
		state:      form.NewState(def),
		engine:     engine,
		validator:  validation.New(engine),
		files:      attachment.NewSelector(cfg.fixtures),
		translator: cfg.translator,
		locale:     cfg.locale,
		logger:     cfg.logger,
	}
	p.banner = banner.New(
		banner.WithClock(cfg.clock),
		banner.WithDuration(cfg.bannerDuration),
		banner.WithMessages(p.bannerMessage),
		banner.WithLogger(cfg.logger.Named("banner")),
	)

	names := make([]string, 0, len(cfg.aliases))
	for name := range cfg.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := p.files.Alias(name, cfg.aliases[name]); err != nil {
			return nil, fmt.Errorf("contactform: fixture alias %q: %w", name, err)
		}
	}

	p.resetView()
	return p, nil
}

// Title returns the document title.
func (p *Page) Title() string { return p.form.Title }

// Form returns the page definition.
func (p *Page) Form() model.FormModel { return p.form }

// State exposes the field registry.
func (p *Page) State() *form.State { return p.state }

// Requirements exposes the conditional requirement engine.
func (p *Page) Requirements() *requirement.Engine { return p.engine }

// Banner exposes the feedback banner.
func (p *Page) Banner() *banner.Banner { return p.banner }

// Privacy exposes the privacy link.
func (p *Page) Privacy() *privacy.Link { return p.privacy }

// Files exposes the file selector, for registering aliases after creation.
func (p *Page) Files() *attachment.Selector { return p.files }

// Locale returns the active message locale.
func (p *Page) Locale() string { return p.locale }

// Type appends text to a text field.
func (p *Page) Type(id, text string) error { return p.state.Type(id, text) }

// SetValue replaces a text field value wholesale.
func (p *Page) SetValue(id, value string) error { return p.state.SetValue(id, value) }

// Clear empties a text field.
func (p *Page) Clear(id string) error { return p.state.Clear(id) }

// Value returns the current value of a field.
func (p *Page) Value(id string) string { return p.state.Value(id) }

// Select picks an option of a select field by label, falling back to value.
// It returns the selected option value.
func (p *Page) Select(id, choice string) (string, error) { return p.state.Select(id, choice) }

// Check checks a checkbox or picks a radio option.
func (p *Page) Check(id string, value ...string) error { return p.state.Check(id, value...) }

// Uncheck clears a checkbox.
func (p *Page) Uncheck(id string) error { return p.state.Uncheck(id) }

// IsRequired reports whether id is currently mandatory.
func (p *Page) IsRequired(id string) bool {
	return p.engine.IsRequired(id, p.state.Toggles())
}

// SelectFile resolves ref (a path or "@alias") and attaches it to the file
// input.
func (p *Page) SelectFile(ref string, action attachment.Action) (attachment.File, error) {
	inputs := p.form.FieldsOfKind(model.FieldKindFile)
	if len(inputs) == 0 {
		return attachment.File{}, ErrNoFileInput
	}
	file, err := p.files.Resolve(ref, action)
	if err != nil {
		return attachment.File{}, err
	}
	if err := p.state.SelectFile(inputs[0].Name, file); err != nil {
		return attachment.File{}, err
	}
	return file, nil
}

// Submit validates the current state and shows the matching banner. Invalid
// input never produces an error; it is reported through the result and the
// error banner.
func (p *Page) Submit() validation.Result {
	result := p.validator.Validate(p.state)
	kind := banner.KindSuccess
	if !result.OK() {
		kind = banner.KindError
	}
	p.banner.Show(kind)

	p.logger.Debug("form submitted",
		zap.String("outcome", string(result.Outcome)),
		zap.String("reason", string(result.Reason)),
		zap.String("field", result.Field),
	)
	return result
}

// FillMandatoryAndSubmit types the four always-required fields and submits.
func (p *Page) FillMandatoryAndSubmit(firstName, lastName, email, comment string) (validation.Result, error) {
	for _, step := range []struct{ id, value string }{
		{"firstName", firstName},
		{"lastName", lastName},
		{"email", email},
		{"open-text-area", comment},
	} {
		if err := p.state.Type(step.id, step.value); err != nil {
			return validation.Result{}, err
		}
	}
	return p.Submit(), nil
}

// Detail returns a localized explanation of a failed result, or the success
// banner text.
func (p *Page) Detail(result validation.Result) string {
	switch result.Reason {
	case validation.ReasonMissingField:
		label := result.Field
		if field, ok := p.form.Field(result.Field); ok && field.Label != "" {
			label = field.Label
		}
		return p.text(messages.MissingField, "Field", label)
	case validation.ReasonBadEmailFormat:
		return p.text(messages.BadEmailFormat, "Email", p.state.Value(result.Field))
	default:
		return p.text(messages.BannerSuccess)
	}
}

// Message translates key in the page locale. Missing keys come back as-is.
func (p *Page) Message(key string, args ...any) string { return p.text(key, args...) }

// BannerMessage returns the text the banner shows for kind.
func (p *Page) BannerMessage(kind banner.Kind) string { return p.bannerMessage(kind) }

// Element returns a decorative element by id.
func (p *Page) Element(id string) (*Element, bool) {
	el, ok := p.elements[id]
	return el, ok
}

// Reload discards every change, as reloading the document would.
func (p *Page) Reload() {
	p.state.Reset()
	p.banner.Reset()
	p.resetView()
}

func (p *Page) resetView() {
	href, label, target := privacy.DefaultHref, "", privacy.TargetBlank
	if v, ok := p.form.Metadata["privacy.href"]; ok && v != "" {
		href = v
	}
	if v, ok := p.form.Metadata["privacy.label"]; ok {
		label = v
	}
	if v, ok := p.form.Metadata["privacy.target"]; ok {
		target = v
	}
	p.privacy = privacy.NewLink(label, href, target)

	p.elements = map[string]*Element{
		ElementTitle:    newElement(ElementTitle, p.form.Title, true),
		ElementSubtitle: newElement(ElementSubtitle, p.form.Subtitle, true),
		ElementCat:      newElement(ElementCat, "🐈", false),
	}
}

func (p *Page) bannerMessage(kind banner.Kind) string {
	if kind == banner.KindSuccess {
		return p.text(messages.BannerSuccess)
	}
	return p.text(messages.BannerError)
}

func (p *Page) text(key string, args ...any) string {
	msg, err := p.translator.Translate(p.locale, key, args...)
	if err != nil {
		p.logger.Warn("missing translation", zap.String("key", key), zap.String("locale", p.locale), zap.Error(err))
		return key
	}
	return msg
}
