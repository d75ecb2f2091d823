// Package tui fills the contact form from a terminal. Each field of the page
// definition becomes a prompt; the collected values go through the same
// validation and banner flow as the page itself.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go.uber.org/zap"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/attachment"
	"github.com/goliatone/go-contactform/pkg/messages"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/submission"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Renderer drives a PromptDriver over a page.
type Renderer struct {
	driver PromptDriver
	out    io.Writer
	format submission.Format
	theme  Theme
	logger *zap.Logger
}

// Outcome is what a completed Fill produced.
type Outcome struct {
	Result  validation.Result
	Message string
	Detail  string
	Payload []byte
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		format: submission.FormatJSON,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Fill prompts for every field of p in definition order, asks for
// confirmation and submits. Validation failures are reported through the
// outcome, not as errors.
func (r *Renderer) Fill(ctx context.Context, p *contactform.Page) (Outcome, error) {
	if ctx == nil {
		return Outcome{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if p == nil {
		return Outcome{}, errors.New("tui: page is nil")
	}

	for _, field := range p.Form().Fields {
		if err := r.promptField(ctx, p, field); err != nil {
			return Outcome{}, err
		}
	}

	submit, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: p.Message(messages.TUISubmitPrompt),
		Default: true,
	})
	if err != nil {
		return Outcome{}, err
	}
	if !submit {
		return Outcome{}, ErrNotSubmitted
	}

	result := p.Submit()
	outcome := Outcome{Result: result, Message: p.Banner().State().Message}
	if !result.OK() {
		outcome.Detail = p.Detail(result)
		r.logger.Info("submission rejected",
			zap.String("reason", string(result.Reason)),
			zap.String("field", result.Field),
		)
		if err := r.info(ctx, r.theme.ErrorPrefix, outcome.Message, outcome.Detail); err != nil {
			return Outcome{}, err
		}
		return outcome, nil
	}

	payload, err := submission.Build(p.State(), result)
	if err != nil {
		return Outcome{}, err
	}
	encoded, err := submission.Encode(payload, r.format)
	if err != nil {
		return Outcome{}, err
	}
	outcome.Payload = encoded
	if err := r.info(ctx, r.theme.InfoPrefix, outcome.Message, string(encoded)); err != nil {
		return Outcome{}, err
	}
	return outcome, nil
}

func (r *Renderer) promptField(ctx context.Context, p *contactform.Page, field model.Field) error {
	label := promptLabel(p, field)

	switch field.Kind {
	case model.FieldKindCheckbox:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label})
		if err != nil {
			return err
		}
		if checked {
			return p.Check(field.Name)
		}
		return p.Uncheck(field.Name)

	case model.FieldKindSelect, model.FieldKindRadio:
		labels := make([]string, len(field.Options))
		for i, opt := range field.Options {
			labels[i] = opt.Label
		}
		cfg := SelectConfig{Message: label, Options: labels, DefaultIndex: -1}
		if field.Kind == model.FieldKindSelect {
			cfg.DefaultIndex = 0
		}
		idx, err := r.driver.Select(ctx, cfg)
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(field.Options) {
			return nil
		}
		if field.Kind == model.FieldKindRadio {
			return p.Check(field.Name, field.Options[idx].Value)
		}
		_, err = p.State().SelectByIndex(field.Name, idx)
		return err

	case model.FieldKindTextArea:
		text, err := r.driver.TextArea(ctx, TextAreaConfig{Message: label})
		if err != nil {
			return err
		}
		return p.SetValue(field.Name, text)

	case model.FieldKindFile:
		ref, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Help:    p.Message(messages.TUIFilePrompt),
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(ref) == "" {
			return nil
		}
		if _, err := p.SelectFile(ref, attachment.ActionSelect); err != nil {
			return fmt.Errorf("tui: field %q: %w", field.Name, err)
		}
		return nil

	default:
		cfg := InputConfig{Message: label}
		if field.Kind == model.FieldKindTel || field.HasRule(model.ValidationRuleDigits) {
			cfg.Validator = digitsOnly
		}
		text, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		return p.SetValue(field.Name, text)
	}
}

func (r *Renderer) info(ctx context.Context, prefix string, lines ...string) error {
	for _, line := range lines {
		if line == "" {
			continue
		}
		if err := r.driver.Info(ctx, prefix+line); err != nil {
			return err
		}
	}
	return nil
}

func promptLabel(p *contactform.Page, field model.Field) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	if p.IsRequired(field.Name) {
		label += " *"
	}
	return label
}

func digitsOnly(s string) error {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("only digits are accepted, got %q", r)
		}
	}
	return nil
}
