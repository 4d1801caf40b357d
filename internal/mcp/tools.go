package mcp

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"shorthand/internal/decompile"
	"shorthand/internal/diagfmt"
	"shorthand/internal/driver"
	"shorthand/internal/format"
)

func (s *Server) registerParseTool() error {
	tool := mcp.NewTool("shorthand_parse",
		mcp.WithDescription("Parse shorthand notation and return the document structure and diagnostics as JSON."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Shorthand source text"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleParse)
	return nil
}

func (s *Server) registerFormatTool() error {
	tool := mcp.NewTool("shorthand_format",
		mcp.WithDescription("Canonically format shorthand notation. Returns the formatted text."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Shorthand source text"),
		),
		mcp.WithNumber("indent",
			mcp.Description("Spaces per block level (default: from config)"),
		),
		mcp.WithBoolean("ascii",
			mcp.Description("Prefer ASCII spellings (in, ->, <>) over Unicode symbols"),
		),
		mcp.WithString("sort_state",
			mcp.Description("State variable order: location, name, or none"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleFormat)
	return nil
}

func (s *Server) registerLintTool() error {
	tool := mcp.NewTool("shorthand_lint",
		mcp.WithDescription("Check shorthand notation for syntax problems, long lines, and non-canonical formatting. Returns diagnostics as JSON."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Shorthand source text"),
		),
		mcp.WithBoolean("strict",
			mcp.Description("Escalate warnings to errors"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleLint)
	return nil
}

func (s *Server) registerDecompileTool() error {
	tool := mcp.NewTool("shorthand_decompile",
		mcp.WithDescription("Convert Go source code into shorthand notation. Structs become entities, methods and functions become signatures."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Go source text"),
		),
		mcp.WithString("role",
			mcp.Description("Module role in the header (default: Core)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleDecompile)
	return nil
}

func (s *Server) registerImplementationTool() error {
	tool := mcp.NewTool("shorthand_implementation",
		mcp.WithDescription("Show the source of one function or method in a Go codebase."),
		mcp.WithString("codebase",
			mcp.Required(),
			mcp.Description("Path to a Go file or directory tree"),
		),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Function name or Type.Method"),
		),
		mcp.WithBoolean("context",
			mcp.Description("Append the bodies of sibling methods the target calls"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleImplementation)
	return nil
}

func (s *Server) registerEntityDetailsTool() error {
	tool := mcp.NewTool("shorthand_entity_details",
		mcp.WithDescription("Show a struct definition with its fields, doc comment, and method set from a Go codebase."),
		mcp.WithString("codebase",
			mcp.Required(),
			mcp.Description("Path to a Go file or directory tree"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Struct name to look up"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleEntityDetails)
	return nil
}

// Tool handlers

func (s *Server) handleParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	src, ok := args["source"].(string)
	if !ok || src == "" {
		return mcp.NewToolResultError("source parameter is required"), nil
	}

	result, err := s.executeParse(src)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	src, ok := args["source"].(string)
	if !ok || src == "" {
		return mcp.NewToolResultError("source parameter is required"), nil
	}

	indent := 0
	if n, ok := args["indent"].(float64); ok {
		indent = int(n)
	}
	ascii, _ := args["ascii"].(bool)
	sortState, _ := args["sort_state"].(string)

	result, err := s.executeFormat(src, indent, ascii, sortState)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleLint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	src, ok := args["source"].(string)
	if !ok || src == "" {
		return mcp.NewToolResultError("source parameter is required"), nil
	}
	strict, _ := args["strict"].(bool)

	result, err := s.executeLint(src, strict)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleDecompile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	src, ok := args["source"].(string)
	if !ok || src == "" {
		return mcp.NewToolResultError("source parameter is required"), nil
	}
	role, _ := args["role"].(string)

	result, err := s.executeDecompile(src, role)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleImplementation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	codebase, ok := args["codebase"].(string)
	if !ok || codebase == "" {
		return mcp.NewToolResultError("codebase parameter is required"), nil
	}
	target, ok := args["target"].(string)
	if !ok || target == "" {
		return mcp.NewToolResultError("target parameter is required"), nil
	}
	withContext, _ := args["context"].(bool)

	result, err := s.executeImplementation(codebase, target, withContext)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleEntityDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	codebase, ok := args["codebase"].(string)
	if !ok || codebase == "" {
		return mcp.NewToolResultError("codebase parameter is required"), nil
	}
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	result, err := s.executeEntityDetails(codebase, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

// Executors, shared by the MCP handlers and CallTool.

func (s *Server) executeParse(src string) (string, error) {
	res := driver.ParseSource(inputName, src, s.parseOptions())
	if res.Err != nil {
		return "", res.Err
	}

	var buf bytes.Buffer
	opts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}
	if err := diagfmt.DocumentJSONTo(&buf, res.Doc, res.FileSet, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Server) executeFormat(src string, indent int, ascii bool, sortState string) (string, error) {
	cfg := s.settings.Format
	if indent > 0 {
		cfg.Indent = indent
	}
	if ascii {
		cfg.PreferUnicode = false
	}
	if sortState != "" {
		if err := cfg.SortStateBy.Set(sortState); err != nil {
			return "", err
		}
	}

	res := driver.ParseSource(inputName, src, s.parseOptions())
	if res.Err != nil {
		return "", res.Err
	}
	if res.Bag.HasErrors() {
		return "", fmt.Errorf("source has syntax errors; run shorthand_lint for details")
	}
	return format.Document(res.Doc, cfg)
}

func (s *Server) executeLint(src string, strict bool) (string, error) {
	res := driver.LintSource(inputName, src, driver.LintOptions{
		Options: s.parseOptions(),
		Config:  s.settings.Format,
		Strict:  strict || s.settings.Lint.Strict,
	})
	if res.Err != nil {
		return "", res.Err
	}

	var buf bytes.Buffer
	opts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true}
	if err := diagfmt.JSONList(&buf, res.Items, res.Result.FileSet, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Server) executeDecompile(src, role string) (string, error) {
	doc, err := decompile.Source("input.go", []byte(src), decompile.Options{Role: role})
	if err != nil {
		return "", err
	}
	return format.Document(doc, s.settings.Format)
}

func (s *Server) executeImplementation(codebase, target string, withContext bool) (string, error) {
	ex, err := s.explorerFor(codebase)
	if err != nil {
		return "", err
	}
	return ex.Implementation(target, withContext)
}

func (s *Server) executeEntityDetails(codebase, name string) (string, error) {
	ex, err := s.explorerFor(codebase)
	if err != nil {
		return "", err
	}
	return ex.EntityDetails(name)
}
