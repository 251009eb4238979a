// Package mcpserver exposes dimension extraction as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpgo "github.com/mark3labs/mcp-go/server"

	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/logger"
	"github.com/teranos/qntx-dims/server"
	"github.com/teranos/qntx-dims/version"
)

// Parser answers parse requests; *server.Server implements it
type Parser interface {
	Parse(ctx context.Context, req server.ParseRequest) (*server.ParseResponse, error)
}

// MCPServer wraps a Parser and exposes it via Model Context Protocol
type MCPServer struct {
	parser Parser
	server *mcpgo.MCPServer
}

// New creates an MCP server answering with p
func New(p Parser) *MCPServer {
	s := &MCPServer{parser: p}
	s.server = mcpgo.NewMCPServer(
		"qntx-dims",
		version.Get().Version,
		mcpgo.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// registerTools registers all MCP tools
func (s *MCPServer) registerTools() {
	extractTool := mcp.NewTool("extract_dimensions",
		mcp.WithDescription("Extract structured values (numbers, ordinals, measurements, money, contacts, "+
			"durations and times) from natural-language text. Times are resolved against the reference time."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to parse"),
		),
		mcp.WithArray("dims",
			mcp.Description("Dimensions to extract, e.g. [\"time\", \"amount-of-money\"] (default: all)"),
			mcp.WithStringItems(),
		),
		mcp.WithString("locale",
			mcp.Description("Locale such as en_US or en_GB (default: configured locale)"),
		),
		mcp.WithString("reference_time",
			mcp.Description("RFC 3339 instant relative times are computed from (default: now)"),
		),
		mcp.WithString("timezone",
			mcp.Description("Timezone naive times are read in: IANA name, abbreviation or offset"),
		),
		mcp.WithBoolean("with_latent",
			mcp.Description("Also return weak readings such as a bare number read as a time"),
		),
	)
	s.server.AddTool(extractTool, s.handleExtract)

	listTool := mcp.NewTool("list_dimensions",
		mcp.WithDescription("List the dimensions extract_dimensions understands and what each depends on"),
	)
	s.server.AddTool(listTool, s.handleList)
}

// handleExtract handles extract_dimensions tool calls
func (s *MCPServer) handleExtract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := server.ParseRequest{
		Text:          text,
		Locale:        request.GetString("locale", ""),
		Dims:          request.GetStringSlice("dims", nil),
		ReferenceTime: request.GetString("reference_time", ""),
		Timezone:      request.GetString("timezone", ""),
	}
	if args := request.GetArguments(); args != nil {
		if _, ok := args["with_latent"]; ok {
			latent := request.GetBool("with_latent", false)
			req.WithLatent = &latent
		}
	}

	resp, err := s.parser.Parse(ctx, req)
	if err != nil {
		if errors.IsInvalidInputError(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		logger.ComponentLogger("mcp").Errorw("Parse failed", logger.FieldError, err)
		return mcp.NewToolResultError("internal error"), nil
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode entities")
	}
	return mcp.NewToolResultText(summary(resp) + "\n" + string(data)), nil
}

// handleList handles list_dimensions tool calls
func (s *MCPServer) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, d := range server.Dims() {
		if len(d.Dependencies) == 0 {
			fmt.Fprintf(&b, "%s\n", d.Name)
			continue
		}
		fmt.Fprintf(&b, "%s (uses %s)\n", d.Name, strings.Join(d.Dependencies, ", "))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func summary(resp *server.ParseResponse) string {
	if len(resp.Entities) == 0 {
		return "No entities found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d entit", len(resp.Entities))
	if len(resp.Entities) == 1 {
		b.WriteString("y:")
	} else {
		b.WriteString("ies:")
	}
	for i, e := range resp.Entities {
		fmt.Fprintf(&b, "\n%d. %s %q = %s", i+1, e.Kind(), e.Body, e.Value.String())
	}
	return b.String()
}

// Serve starts the MCP server using stdio transport
func (s *MCPServer) Serve() error {
	return mcpgo.ServeStdio(s.server)
}
