package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/validation"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available calculators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "SLUG\tCATEGORY\tTITLE")
			for _, meta := range a.registry.List() {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", meta.Slug, meta.Category, meta.Title)
			}
			return tw.Flush()
		},
	}
}

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [calculator]",
		Short: "Show the inputs and the explanation of a calculator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := a.registry.Get(args[0])
			if err != nil {
				return unknownCalculatorErr(args[0], err)
			}
			meta := calc.Meta()

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s)\n%s\n\n", meta.Title, meta.Slug, meta.Summary)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "FIELD\tTYPE\tUNIT\tREQUIRED\tALLOWED")
			for _, f := range meta.Fields {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", f.Name, f.Type, f.Unit, f.Required, allowedValues(f))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if md := meta.Markdown(); md != "" {
				_, _ = fmt.Fprintf(out, "\n%s\n", strings.TrimSpace(md))
			}
			return nil
		},
	}
}

func allowedValues(f calculators.Field) string {
	switch {
	case len(f.Options) > 0:
		return strings.Join(f.Options, "|")
	case f.Min != nil && f.Max != nil:
		return fmt.Sprintf("%g..%g", *f.Min, *f.Max)
	case f.Min != nil:
		return fmt.Sprintf(">= %g", *f.Min)
	case f.Max != nil:
		return fmt.Sprintf("<= %g", *f.Max)
	}
	return ""
}

func (a *app) calcCmd() *cobra.Command {
	var (
		rawJSON string
		sets    []string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "calc [calculator]",
		Short: "Run a calculator",
		Example: `  fitcalc calc bmi --json '{"weight": 80, "height": 180}'
  fitcalc calc bmi --set units=imperial --set weight=176 --set height=71`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			calc, err := a.registry.Get(slug)
			if err != nil {
				return unknownCalculatorErr(slug, err)
			}

			input, err := calcInput(calc.Meta(), rawJSON, sets)
			if err != nil {
				return err
			}

			outcome, err := calc.Calculate(input)
			if err != nil {
				if vErr, ok := validation.AsError(err); ok {
					return vErr
				}
				return err
			}

			out := cmd.OutOrStdout()
			switch output {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(outcome)
			case "text":
				_, _ = fmt.Fprintln(out, outcome.Summary)
				resultJSON, err := json.MarshalIndent(outcome.Result, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal result: %w", err)
				}
				_, _ = fmt.Fprintln(out, string(resultJSON))
				return nil
			default:
				return fmt.Errorf("unknown output format %q, use text or json", output)
			}
		},
	}

	cmd.Flags().StringVar(&rawJSON, "json", "", "calculator input as a JSON object")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "input field as key=value (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	cmd.MarkFlagsMutuallyExclusive("json", "set")

	return cmd
}

// calcInput turns the --json or --set flags into the JSON object the calculator accepts.
// --set values are typed through the calculator fields, the same way html forms are.
func calcInput(meta calculators.Meta, rawJSON string, sets []string) ([]byte, error) {
	if rawJSON != "" {
		if !json.Valid([]byte(rawJSON)) {
			return nil, errors.New("--json is not valid JSON")
		}
		return []byte(rawJSON), nil
	}

	form := url.Values{}
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected key=value", s)
		}
		form.Add(strings.TrimSpace(key), value)
	}

	return calculators.FormToJSON(meta, form)
}

func unknownCalculatorErr(slug string, err error) error {
	if errors.Is(err, calculators.ErrUnknownCalculator) {
		return fmt.Errorf("unknown calculator %q, run `fitcalc list` to see them all", slug)
	}
	return err
}
