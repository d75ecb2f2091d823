package contactform

import (
	"io/fs"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/clock"
	"github.com/goliatone/go-contactform/pkg/messages"
	"github.com/goliatone/go-contactform/pkg/model"
)

// Option configures a Page.
type Option func(*config)

type config struct {
	form           *model.FormModel
	clock          clock.Clock
	locale         string
	bannerDuration time.Duration
	translator     messages.Translator
	fixtures       fs.FS
	aliases        map[string]string
	logger         *zap.Logger
}

// WithForm replaces the bundled contact page definition.
func WithForm(form model.FormModel) Option {
	return func(c *config) {
		c.form = &form
	}
}

// WithClock injects the clock driving the banner timer.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithLocale selects the language of banner and detail messages.
func WithLocale(locale string) Option {
	return func(c *config) {
		if l := strings.TrimSpace(locale); l != "" {
			c.locale = l
		}
	}
}

// WithBannerDuration overrides how long banners stay visible.
func WithBannerDuration(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.bannerDuration = d
		}
	}
}

// WithTranslator overrides the message catalog.
func WithTranslator(t messages.Translator) Option {
	return func(c *config) {
		if t != nil {
			c.translator = t
		}
	}
}

// WithFixtures sets the filesystem file references resolve against.
func WithFixtures(fsys fs.FS) Option {
	return func(c *config) {
		c.fixtures = fsys
	}
}

// WithFixtureAlias registers "@name" for a fixture path, applied when the
// page is built.
func WithFixtureAlias(name, path string) Option {
	return func(c *config) {
		if c.aliases == nil {
			c.aliases = make(map[string]string)
		}
		c.aliases[name] = path
	}
}

// WithLogger attaches a logger to the page and its banner.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
