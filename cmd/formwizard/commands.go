package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	formwizard "github.com/goliatone/go-formwizard"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/registry"
	"github.com/goliatone/go-formwizard/pkg/summary"
	"github.com/goliatone/go-formwizard/pkg/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func (a *app) sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the available forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SECTION\tID\tSTEPS\tTITLE")
			for _, id := range reg.IDs() {
				def, _ := reg.Definition(id)
				section := def.Section
				if section == "" {
					section = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", section, def.ID, def.TotalSteps(), def.Title)
			}
			return tw.Flush()
		},
	}
}

func (a *app) runCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "run <section>",
		Short: "Fill a form interactively, resuming saved progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, reg, err := a.definition(args[0])
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(ctx, a.cfg.Store)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					a.logger.Warn("closing store failed", zap.Error(err))
				}
			}()

			runner, err := tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())))
			if err != nil {
				return err
			}
			submissions, closeOut, err := submissionWriter(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeOut()

			w, restored, err := formwizard.Start(ctx, reg, args[0],
				wizard.WithStore(store),
				wizard.WithSink(notify.Multi(runner.Sink(), notify.NewLogSink(a.logger))),
				wizard.WithLogger(a.logger),
				wizard.WithLocale(a.cfg.Locale),
				wizard.WithSubmitter(jsonSubmitter(submissions)),
			)
			if err != nil {
				return err
			}
			defer w.Close()
			a.logger.Debug("wizard started", zap.String("form", w.Definition().ID), zap.Bool("restored", restored))

			sub, err := runner.Run(ctx, w)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "reference: %s\n", sub.Reference)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "append submissions as JSON lines to this file (stdout if empty)")
	return cmd
}

func (a *app) priceCmd() *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:   "price <section> [field=value...]",
		Short: "Print the summary and price for a set of answers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, _, err := a.definition(args[0])
			if err != nil {
				return err
			}
			values, err := parseAssignments(def, args[1:])
			if err != nil {
				return err
			}

			renderer, err := summary.NewRenderer()
			if err != nil {
				return err
			}
			doc := formwizard.Quote(def, values)
			var out string
			if html {
				out, err = renderer.HTML(doc)
			} else {
				out, err = renderer.Definition(def, doc)
			}
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "render the HTML summary fragment")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check form definition files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed []error
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					failed = append(failed, err)
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					continue
				}
				def, err := registry.Parse(data, path)
				if err != nil {
					failed = append(failed, err)
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s: %s (%d steps)\n", path, def.ID, def.TotalSteps())
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d definitions invalid: %w", len(failed), len(args), errors.Join(failed...))
			}
			return nil
		},
	}
}

func (a *app) openapiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "openapi <file> <operationId>",
		Short: "Derive a form definition from an OpenAPI operation and print it as YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			def, err := registry.FromOpenAPI(cmd.Context(), data, args[1])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(def); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func (a *app) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <section>",
		Short: "Discard saved progress for a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			def, _, err := a.definition(args[0])
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(ctx, a.cfg.Store)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Delete(ctx, def.StorageKey()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", def.StorageKey())
			return nil
		},
	}
}

// parseAssignments turns field=value arguments into values, rejecting
// fields the definition does not declare.
func parseAssignments(def model.Definition, args []string) (model.Values, error) {
	values := make(model.Values, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		name = strings.TrimSpace(name)
		if _, known := def.Field(name); !known {
			return nil, fmt.Errorf("form %q has no field %q", def.ID, name)
		}
		values[name] = value
	}
	return values, nil
}

func submissionWriter(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return fallback, func() error { return nil }, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func jsonSubmitter(out io.Writer) wizard.Submitter {
	return wizard.SubmitterFunc(func(_ context.Context, sub wizard.Submission) error {
		return json.NewEncoder(out).Encode(sub)
	})
}
