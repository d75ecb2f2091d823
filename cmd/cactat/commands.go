package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	contactform "github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/attachment"
	"github.com/goliatone/go-contactform/pkg/formdef"
	"github.com/goliatone/go-contactform/pkg/messages"
	"github.com/goliatone/go-contactform/pkg/page"
	"github.com/goliatone/go-contactform/pkg/reachability"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/submission"
)

func (a *app) newPage() (*contactform.Page, error) {
	opts := []contactform.Option{
		contactform.WithLocale(a.cfg.Locale),
		contactform.WithBannerDuration(a.cfg.BannerDuration),
		contactform.WithFixtures(os.DirFS(a.cfg.Fixtures.Dir)),
		contactform.WithLogger(a.logger),
	}
	for name, path := range a.cfg.Fixtures.Aliases {
		opts = append(opts, contactform.WithFixtureAlias(name, path))
	}
	if a.cfg.Form != "" {
		data, err := os.ReadFile(a.cfg.Form)
		if err != nil {
			return nil, fmt.Errorf("read form definition: %w", err)
		}
		def, err := formdef.Parse(data, a.cfg.Form)
		if err != nil {
			return nil, err
		}
		opts = append(opts, contactform.WithForm(def))
	}
	return contactform.New(opts...)
}

func newRenderCmd(a *app) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write index.html and privacy.html",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newPage()
			if err != nil {
				return err
			}
			renderer, err := page.New(page.WithLocale(p.Locale()))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			index, err := renderer.Render(page.ViewOf(p))
			if err != nil {
				return err
			}
			privacy, err := renderer.RenderPrivacy(page.PrivacyViewOf(p))
			if err != nil {
				return err
			}
			for name, html := range map[string]string{"index.html": index, "privacy.html": privacy} {
				path := filepath.Join(outDir, name)
				if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", name, err)
				}
				a.logger.Info("page written", zap.String("path", path))
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	return cmd
}

type submitFlags struct {
	firstName     string
	lastName      string
	email         string
	phone         string
	comment       string
	product       string
	service       string
	file          string
	emailContact  bool
	phoneRequired bool
	format        string
}

func newSubmitCmd(a *app) *cobra.Command {
	var f submitFlags
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate the given values once and print the outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newPage()
			if err != nil {
				return err
			}
			if err := f.apply(p); err != nil {
				return err
			}

			result := p.Submit()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, p.Banner().State().Message)
			if !result.OK() {
				fmt.Fprintln(out, p.Detail(result))
				return errFailed
			}

			payload, err := submission.Build(p.State(), result)
			if err != nil {
				return err
			}
			encoded, err := submission.Encode(payload, submission.Format(f.format))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(encoded))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.firstName, "first-name", "", "first name")
	flags.StringVar(&f.lastName, "last-name", "", "last name")
	flags.StringVar(&f.email, "email", "", "email address")
	flags.StringVar(&f.phone, "phone", "", "phone number (digits only)")
	flags.StringVar(&f.comment, "comment", "", "message text")
	flags.StringVar(&f.product, "product", "", "product label or value")
	flags.StringVar(&f.service, "service", "", "service type (ajuda, elogio, feedback)")
	flags.StringVar(&f.file, "file", "", "attachment path or @alias")
	flags.BoolVar(&f.emailContact, "email-contact", false, "prefer contact by email")
	flags.BoolVar(&f.phoneRequired, "phone-required", false, "prefer contact by phone, making it mandatory")
	flags.StringVar(&f.format, "format", string(submission.FormatJSON), "payload format (json, form)")
	return cmd
}

func (f submitFlags) apply(p *contactform.Page) error {
	for _, step := range []struct{ id, value string }{
		{"firstName", f.firstName},
		{"lastName", f.lastName},
		{"email", f.email},
		{"phone", f.phone},
		{"open-text-area", f.comment},
	} {
		if step.value == "" {
			continue
		}
		if err := p.Type(step.id, step.value); err != nil {
			return err
		}
	}
	if f.product != "" {
		if _, err := p.Select("product", f.product); err != nil {
			return err
		}
	}
	if f.service != "" {
		if err := p.Check("service-type", strings.ToLower(f.service)); err != nil {
			return err
		}
	}
	if f.emailContact {
		if err := p.Check("email-checkbox"); err != nil {
			return err
		}
	}
	if f.phoneRequired {
		if err := p.Check("phone-checkbox"); err != nil {
			return err
		}
	}
	if f.file != "" {
		if _, err := p.SelectFile(f.file, attachment.ActionSelect); err != nil {
			return err
		}
	}
	return nil
}

func newFillCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newPage()
			if err != nil {
				return err
			}
			renderer, err := tui.New(
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithOutputFormat(submission.Format(format)),
				tui.WithLogger(a.logger.Named("tui")),
			)
			if err != nil {
				return err
			}
			outcome, err := renderer.Fill(cmd.Context(), p)
			if err != nil {
				return err
			}
			if !outcome.Result.OK() {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(submission.FormatJSON), "payload format (json, form)")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [url]",
		Short: "Check that the hosted page answers 200 and contains its title",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := a.cfg.Reachability.URL
			if len(args) == 1 {
				target = args[0]
			}
			checker := reachability.New(
				reachability.WithURL(target),
				reachability.WithMarker(a.cfg.Reachability.Marker),
				reachability.WithTimeout(a.cfg.Reachability.Timeout),
				reachability.WithLogger(a.logger.Named("reachability")),
			)

			result, err := checker.Check(cmd.Context(), target)
			if err != nil {
				return err
			}

			catalog, err := messages.New()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result.OK() {
				fmt.Fprintln(out, catalog.Text(a.cfg.Locale, messages.ReachabilityOK,
					"URL", result.URL, "Status", result.Status, "Marker", result.Marker))
				return nil
			}
			fmt.Fprintln(out, catalog.Text(a.cfg.Locale, messages.ReachabilityFailed,
				"URL", result.URL, "Status", result.Status, "Marker", result.Marker, "Found", result.ContainsMarker))
			return errFailed
		},
	}
}
