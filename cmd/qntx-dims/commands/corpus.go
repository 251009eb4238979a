package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-dims/am"
	"github.com/teranos/qntx-dims/corpus"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/extract"
)

// CorpusCmd runs regression corpora
var CorpusCmd = &cobra.Command{
	Use:   "corpus <file>...",
	Short: "Run regression corpora",
	Long: `Parse every case of the given corpus files and compare the entities
against their expectations. Files ending in .toml are read as TOML, all
others as YAML.

A corpus whose 'requires' constraint the running build does not satisfy
is skipped.

Examples:
  qntx-dims corpus corpus/testdata/en_us.yaml
  qntx-dims corpus -v corpus/testdata/*`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCorpus,
}

var corpusQuiet bool

func init() {
	CorpusCmd.Flags().BoolVarP(&corpusQuiet, "quiet", "q", false, "Only report failures")
}

func runCorpus(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	corpora, err := corpus.LoadAll(args...)
	if err != nil {
		return err
	}

	ex := extract.New(extract.WithMaxRounds(cfg.Parse.MaxRounds))
	out := cmd.OutOrStdout()
	var passed, failed int
	for _, c := range corpora {
		report, err := corpus.Run(cmd.Context(), ex, c)
		if err != nil {
			return err
		}
		if report.Skipped != "" {
			pterm.Warning.WithWriter(out).Printfln("%s: skipped (%s)", c.Path, report.Skipped)
			continue
		}

		for _, res := range report.Results {
			if res.Passed() {
				if !corpusQuiet {
					pterm.Success.WithWriter(out).Printfln("%s: %s", c.Path, res.Case.Label())
				}
				continue
			}
			pterm.Error.WithWriter(out).Printfln("%s: %s", c.Path, res.Case.Label())
			if res.Err != nil {
				fmt.Fprintf(out, "    %v\n", res.Err)
			}
			for _, f := range res.Failures {
				fmt.Fprintf(out, "    %s\n", f)
			}
		}

		p, f := report.Counts()
		passed += p
		failed += f
	}

	fmt.Fprintf(out, "\n%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return errors.Newf("%d corpus case(s) failed", failed)
	}
	return nil
}
