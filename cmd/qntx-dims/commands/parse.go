package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-dims/am"
	"github.com/teranos/qntx-dims/corpus"
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/display"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/extract"
	"github.com/teranos/qntx-dims/locale"
)

// ParseCmd extracts entities from its arguments or stdin
var ParseCmd = &cobra.Command{
	Use:   "parse [text...]",
	Short: "Extract entities from text",
	Long: `Extract entities from text given as arguments, or from stdin when no
arguments are given.

Flags override the configured defaults (see 'qntx-dims am show').

Examples:
  qntx-dims parse "tomorrow at 3pm"
  qntx-dims parse --ref 2013-02-12T04:30:00Z "last monday of may"
  qntx-dims parse -d amount-of-money,email "send $20 to bob@example.com"
  qntx-dims parse --tz America/Los_Angeles --json "today"`,
	RunE: runParse,
}

var (
	parseDims         []string
	parseLocale       string
	parseRef          string
	parseTimezone     string
	parseLatent       bool
	parseAlternatives int
)

func init() {
	ParseCmd.Flags().StringSliceVarP(&parseDims, "dims", "d", nil, "Dimensions to extract (default: configured, or all)")
	ParseCmd.Flags().StringVarP(&parseLocale, "locale", "l", "", "Locale, e.g. en_US or en_GB")
	ParseCmd.Flags().StringVar(&parseRef, "ref", "", "Reference time in RFC 3339 (default: now)")
	ParseCmd.Flags().StringVar(&parseTimezone, "tz", "", "Timezone naive times are read in")
	ParseCmd.Flags().BoolVar(&parseLatent, "latent", false, "Include latent readings")
	ParseCmd.Flags().IntVar(&parseAlternatives, "alternatives", 0, "Alternative time values to list (-1 for none)")
	ParseCmd.Flags().BoolP("json", "j", false, "Output entities as JSON")
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := inputText(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	loc, err := cfg.GetLocale()
	if parseLocale != "" {
		loc, err = locale.Parse(parseLocale)
	}
	if err != nil {
		return err
	}

	kinds, err := cfg.GetDims()
	if len(parseDims) > 0 {
		kinds, err = dimension.ParseKinds(parseDims)
	}
	if err != nil {
		return err
	}

	ref := time.Now()
	if parseRef != "" {
		if ref, err = time.Parse(time.RFC3339, parseRef); err != nil {
			return errors.WrapInvalidInput(err, "--ref")
		}
	}
	tz := cfg.Parse.Timezone
	if parseTimezone != "" {
		tz = parseTimezone
	}
	pctx, err := extract.NewContext(ref, tz)
	if err != nil {
		return err
	}

	opts := cfg.GetOptions()
	if cmd.Flags().Changed("latent") {
		opts.WithLatent = parseLatent
	}
	if cmd.Flags().Changed("alternatives") {
		opts.MaxAlternatives = parseAlternatives
	}

	ex := extract.New(extract.WithMaxRounds(cfg.Parse.MaxRounds))
	entities, err := ex.Parse(cmd.Context(), text, loc, kinds, pctx, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(out, entities)
	}
	return renderEntities(out, entities)
}

// inputText joins args, or reads stdin when there are none
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "failed to read stdin")
	}
	text := strings.TrimRight(string(data), "\r\n")
	if text == "" {
		return "", errors.NewInvalidInputError("no text given: pass it as arguments or on stdin")
	}
	return text, nil
}

func renderEntities(w io.Writer, entities []dimension.Entity) error {
	if len(entities) == 0 {
		_, err := fmt.Fprintln(w, "No entities found")
		return err
	}

	data := pterm.TableData{{"Body", "Dim", "Span", "Value", "Grain"}}
	for _, e := range entities {
		body := e.Body
		if e.Latent != nil && *e.Latent {
			body += " (latent)"
		}
		data = append(data, []string{
			body,
			e.Kind().String(),
			strconv.Itoa(e.Start) + "-" + strconv.Itoa(e.End),
			corpus.Render(e.Value),
			corpus.GrainOf(e.Value),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}
