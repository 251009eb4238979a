package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/qntx-dims/am"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/mcpserver"
	"github.com/teranos/qntx-dims/server"
)

// McpCmd serves extraction as MCP tools over stdio
var McpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve extraction as MCP tools over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing the
extract_dimensions and list_dimensions tools.

Logs go to stderr so they never corrupt the protocol stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := am.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}
		srv, err := server.New(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to create server")
		}
		return mcpserver.New(srv).Serve()
	},
}
