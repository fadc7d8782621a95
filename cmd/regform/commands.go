package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/result"
	"github.com/goliatone/go-regform/pkg/rules"
	"github.com/goliatone/go-regform/pkg/storage"
	"github.com/goliatone/go-regform/pkg/submit"
	"github.com/goliatone/go-regform/pkg/surface"
)

var errNotTerminal = errors.New("run needs an interactive terminal; use submit for scripted input")

func newRunCmd(a *app) *cobra.Command {
	var valuesPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill in the form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.isTerminal() {
				return errNotTerminal
			}
			values, err := loadValues(valuesPath, nil)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			session := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithPrefill(values),
			)
			o, err := a.session(session, store)
			if err != nil {
				return err
			}
			defer o.Close()

			if err := session.Run(ctx, o); err != nil && !errors.Is(err, tui.ErrAborted) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file with prompt defaults")
	return cmd
}

func newSubmitCmd(a *app) *cobra.Command {
	var (
		valuesPath    string
		sets          []string
		checkContract bool
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate the given values and post them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadValues(valuesPath, sets)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			ui := surface.NewMemory(values)
			o, err := a.session(ui, store)
			if err != nil {
				return err
			}
			defer o.Close()

			if checkContract {
				if err := checkAgainstContract(o, a.cfg.Endpoint); err != nil {
					return err
				}
			}

			pending, err := o.Submit(ctx)
			if err != nil {
				var invalid *orchestrator.InvalidError
				if errors.As(err, &invalid) {
					printInvalid(out, ui, invalid.Fields)
				}
				return err
			}
			res, err := pending.Wait(ctx)
			if err != nil {
				return err
			}
			modal, _ := ui.Modal()
			printModal(out, modal)
			if !res.Succeeded {
				return fmt.Errorf("submission failed: %w", res.Err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file with field values")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as field=value (repeatable)")
	cmd.Flags().BoolVar(&checkContract, "check-contract", false, "Check the payload against the generated request schema before posting")
	return cmd
}

func checkAgainstContract(o *orchestrator.Orchestrator, endpoint string) error {
	state := o.Validate()
	if !state.Valid {
		return nil
	}
	c, err := contract.Build(o.Rules(), endpoint)
	if err != nil {
		return err
	}
	return c.CheckPayload(state.Values)
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		valuesPath string
		sets       []string
		validate   bool
		showLast   bool
		templates  string
		output     string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the registration page as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := loadValues(valuesPath, sets)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			table := rules.Default()

			ui := surface.NewMemory(values)
			controller, err := form.NewController(table, ui,
				form.WithLogger(a.logger),
				form.WithTitleField(a.cfg.Title.Field),
				form.WithGreeting(a.cfg.Title.Greeting),
			)
			if err != nil {
				return err
			}
			controller.Init()
			if validate {
				for _, id := range table.IDs() {
					if _, err := controller.Blur(id); err != nil {
						return err
					}
				}
			}
			if showLast {
				if err := showStored(ctx, a, ui); err != nil {
					return err
				}
			}

			renderer, err := vanilla.New(vanilla.WithTemplatesDir(templates))
			if err != nil {
				return err
			}
			html, err := renderer.RenderPage(ctx, table, vanilla.Snapshot(ui, a.cfg.Endpoint))
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, html)
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file with field values")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Field value as field=value (repeatable)")
	cmd.Flags().BoolVar(&validate, "validate", false, "Run every field rule so inline errors are rendered")
	cmd.Flags().BoolVar(&showLast, "show-last", false, "Open the modal with the stored response")
	cmd.Flags().StringVar(&templates, "templates", "", "Directory whose templates/page.tmpl and templates/modal.tmpl override the embedded ones")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	return cmd
}

func showStored(ctx context.Context, a *app, ui surface.ModalView) error {
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	data, err := store.Get(ctx, a.cfg.Storage.Key)
	if err != nil {
		return fmt.Errorf("load stored response: %w", err)
	}
	ui.ShowModal(result.Build(submit.Success("stored", 0, data)))
	return nil
}

func newContractCmd(a *app) *cobra.Command {
	var (
		format  string
		title   string
		version string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Print the OpenAPI document for the submission endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := contract.Build(rules.Default(), a.cfg.Endpoint,
				contract.WithTitle(title),
				contract.WithVersion(version),
			)
			if err != nil {
				return err
			}
			if err := c.Validate(commandContext(cmd)); err != nil {
				return err
			}
			var data []byte
			switch strings.ToLower(format) {
			case "json":
				data, err = c.JSON()
			case "yaml", "yml":
				data, err = c.YAML()
			default:
				return fmt.Errorf("unknown format %q, expected json or yaml", format)
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVar(&title, "title", "", "Document title")
	cmd.Flags().StringVar(&version, "version", "", "Document version")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout if empty)")
	return cmd
}

func newLastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Print the last stored response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			data, err := store.Get(ctx, a.cfg.Storage.Key)
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("nothing stored under %q in the %s store", a.cfg.Storage.Key, a.cfg.Storage.Driver)
			}
			if err != nil {
				return err
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, data, "", "  "); err != nil {
				return fmt.Errorf("stored value is not JSON: %w", err)
			}
			pretty.WriteByte('\n')
			_, err = cmd.OutOrStdout().Write(pretty.Bytes())
			return err
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printInvalid(out io.Writer, ui *surface.Memory, fields []string) {
	fmt.Fprintln(out, orchestrator.InvalidFormMessage)
	for _, id := range fields {
		fmt.Fprintf(out, "  %s: %s\n", surface.Describe(id).Label, ui.ErrorText(id))
	}
}

func printModal(out io.Writer, modal surface.Modal) {
	fmt.Fprintln(out, modal.Heading)
	fmt.Fprintln(out, modal.Copy)
	fmt.Fprintln(out, modal.Body)
}

func writeOutput(out io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(out, "written to %s\n", path)
	return nil
}
