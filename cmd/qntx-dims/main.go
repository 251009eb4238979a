package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/qntx-dims/am"
	"github.com/teranos/qntx-dims/cmd/qntx-dims/commands"
	"github.com/teranos/qntx-dims/logger"
)

var rootCmd = &cobra.Command{
	Use:   "qntx-dims",
	Short: "qntx-dims - extract structured values from natural-language text",
	Long: `qntx-dims - dimension extraction for natural-language text.

qntx-dims finds numbers, ordinals, measurements, amounts of money, contacts,
durations and times in free text and resolves them to structured values.
Times are resolved against a reference time and timezone.

Available commands:
  parse   - Extract entities from text or stdin
  dims    - List the supported dimensions
  corpus  - Run regression corpora (YAML or TOML)
  serve   - Start the HTTP and WebSocket API
  mcp     - Serve extraction as MCP tools over stdio
  am      - Manage configuration ("I am")
  version - Show version information

Examples:
  qntx-dims parse "tomorrow at 3pm"
  qntx-dims parse -d time,duration --tz Europe/Berlin "next friday for 2 hours"
  echo "it costs 20 dollars" | qntx-dims parse --json
  qntx-dims corpus testdata/*.yaml
  qntx-dims serve --port 8787`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if !cmd.Flags().Changed("json-logs") {
			jsonLogs = am.GetViper().GetBool("log.json")
		}
		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		logger.SetVerbosity(verbosity)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit structured JSON logs on stderr")

	rootCmd.AddCommand(commands.ParseCmd)
	rootCmd.AddCommand(commands.DimsCmd)
	rootCmd.AddCommand(commands.CorpusCmd)
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.McpCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
