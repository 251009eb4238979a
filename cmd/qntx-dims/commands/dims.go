package commands

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-dims/display"
	"github.com/teranos/qntx-dims/server"
)

// DimsCmd lists the supported dimensions
var DimsCmd = &cobra.Command{
	Use:   "dims",
	Short: "List the supported dimensions",
	Long:  `List every dimension and the dimensions its rules build on. Requesting a dimension also runs the rules of its dependencies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dims := server.Dims()
		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(cmd.OutOrStdout(), dims)
		}

		data := pterm.TableData{{"Dimension", "Depends on"}}
		for _, d := range dims {
			data = append(data, []string{d.Name, strings.Join(d.Dependencies, ", ")})
		}
		return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
	},
}

func init() {
	DimsCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}
