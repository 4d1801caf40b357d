// Package mcp exposes the shorthand toolchain over the Model Context
// Protocol. Agents get the parser, formatter, linter, and decompiler
// as stdio tools, plus point queries into Go codebases, without
// shelling out to the CLI.
package mcp

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"shorthand/internal/config"
	"shorthand/internal/driver"
	"shorthand/internal/explore"
	"shorthand/internal/version"
)

// inputName labels virtual sources in diagnostics.
const inputName = "<mcp>"

// Server wraps the MCP server with the shorthand toolchain.
type Server struct {
	mcpServer *server.MCPServer
	settings  *config.Config
	tools     map[string]bool
	// explorers caches one index per codebase root across tool calls.
	explorers    map[string]*explore.Explorer
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration.
type Config struct {
	// Settings supplies format and lint defaults; nil means the
	// documented defaults without manifest discovery.
	Settings *config.Config
	// Tools selects which tools to expose (empty = all).
	Tools []string
	// Timeout exits the process after this much inactivity (0 = never).
	Timeout time.Duration
}

// AllTools lists every tool the server can expose.
var AllTools = []string{
	"shorthand_parse",
	"shorthand_format",
	"shorthand_lint",
	"shorthand_decompile",
	"shorthand_implementation",
	"shorthand_entity_details",
}

// New creates an MCP server exposing the requested tools.
func New(cfg Config) (*Server, error) {
	settings := cfg.Settings
	if settings == nil {
		settings = config.Default()
	}

	mcpServer := server.NewMCPServer(
		"shorthand",
		version.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		settings:     settings,
		tools:        make(map[string]bool),
		explorers:    make(map[string]*explore.Explorer),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = AllTools
	}
	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			return nil, err
		}
		s.tools[toolName] = true
	}

	return s, nil
}

func (s *Server) registerTool(name string) error {
	switch name {
	case "shorthand_parse":
		return s.registerParseTool()
	case "shorthand_format":
		return s.registerFormatTool()
	case "shorthand_lint":
		return s.registerLintTool()
	case "shorthand_decompile":
		return s.registerDecompileTool()
	case "shorthand_implementation":
		return s.registerImplementationTool()
	case "shorthand_entity_details":
		return s.registerEntityDetailsTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server on the stdio transport.
func (s *Server) ServeStdio() error {
	if s.timeout > 0 {
		go s.timeoutChecker()
	}
	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker exits the process after the configured inactivity.
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "shorthand mcp: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// ListTools returns the names of the registered tools.
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// explorerFor returns the cached explorer for a codebase root,
// indexing it on first use.
func (s *Server) explorerFor(root string) (*explore.Explorer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ex, ok := s.explorers[abs]; ok {
		return ex, nil
	}
	ex, err := explore.New(abs)
	if err != nil {
		return nil, err
	}
	s.explorers[abs] = ex
	return ex, nil
}

func (s *Server) parseOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics:  s.settings.Lint.MaxDiagnostics,
		ExtraDecorators: s.settings.Decorators,
	}
}

// ToolSchema describes a tool's name, description, and parameters.
type ToolSchema struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  []ParameterSchema `json:"parameters"`
}

// ParameterSchema describes a single tool parameter.
type ParameterSchema struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// toolSchemaRegistry mirrors the mcp.NewTool() definitions in the
// register*Tool() functions, for --list-tools and direct invocation.
var toolSchemaRegistry = map[string]ToolSchema{
	"shorthand_parse": {
		Name:        "shorthand_parse",
		Description: "Parse shorthand notation and return the document structure and diagnostics as JSON.",
		Parameters: []ParameterSchema{
			{Name: "source", Type: "string", Description: "Shorthand source text", Required: true},
		},
	},
	"shorthand_format": {
		Name:        "shorthand_format",
		Description: "Canonically format shorthand notation. Returns the formatted text.",
		Parameters: []ParameterSchema{
			{Name: "source", Type: "string", Description: "Shorthand source text", Required: true},
			{Name: "indent", Type: "number", Description: "Spaces per block level (default: from config)"},
			{Name: "ascii", Type: "boolean", Description: "Prefer ASCII spellings (in, ->, <>) over Unicode symbols"},
			{Name: "sort_state", Type: "string", Description: "State variable order: location, name, or none"},
		},
	},
	"shorthand_lint": {
		Name:        "shorthand_lint",
		Description: "Check shorthand notation for syntax problems, long lines, and non-canonical formatting. Returns diagnostics as JSON.",
		Parameters: []ParameterSchema{
			{Name: "source", Type: "string", Description: "Shorthand source text", Required: true},
			{Name: "strict", Type: "boolean", Description: "Escalate warnings to errors"},
		},
	},
	"shorthand_decompile": {
		Name:        "shorthand_decompile",
		Description: "Convert Go source code into shorthand notation. Structs become entities, methods and functions become signatures.",
		Parameters: []ParameterSchema{
			{Name: "source", Type: "string", Description: "Go source text", Required: true},
			{Name: "role", Type: "string", Description: "Module role in the header (default: Core)"},
		},
	},
	"shorthand_implementation": {
		Name:        "shorthand_implementation",
		Description: "Show the source of one function or method in a Go codebase.",
		Parameters: []ParameterSchema{
			{Name: "codebase", Type: "string", Description: "Path to a Go file or directory tree", Required: true},
			{Name: "target", Type: "string", Description: "Function name or Type.Method", Required: true},
			{Name: "context", Type: "boolean", Description: "Append the bodies of sibling methods the target calls"},
		},
	},
	"shorthand_entity_details": {
		Name:        "shorthand_entity_details",
		Description: "Show a struct definition with its fields, doc comment, and method set from a Go codebase.",
		Parameters: []ParameterSchema{
			{Name: "codebase", Type: "string", Description: "Path to a Go file or directory tree", Required: true},
			{Name: "name", Type: "string", Description: "Struct name to look up", Required: true},
		},
	},
}

// GetToolSchemas returns schemas for the registered tools.
func (s *Server) GetToolSchemas() []ToolSchema {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schemas := make([]ToolSchema, 0, len(s.tools))
	for name := range s.tools {
		if schema, ok := toolSchemaRegistry[name]; ok {
			schemas = append(schemas, schema)
		}
	}
	return schemas
}

// CallTool dispatches a tool call by name with the given arguments,
// bypassing the stdio transport. Returns the tool's text result.
func (s *Server) CallTool(name string, args map[string]any) (string, error) {
	s.mu.RLock()
	registered := s.tools[name]
	s.mu.RUnlock()

	if !registered {
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	switch name {
	case "shorthand_parse":
		src, _ := args["source"].(string)
		if src == "" {
			return "", fmt.Errorf("source parameter is required")
		}
		return s.executeParse(src)

	case "shorthand_format":
		src, _ := args["source"].(string)
		if src == "" {
			return "", fmt.Errorf("source parameter is required")
		}
		indent := 0
		if n, ok := args["indent"].(float64); ok {
			indent = int(n)
		}
		ascii, _ := args["ascii"].(bool)
		sortState, _ := args["sort_state"].(string)
		return s.executeFormat(src, indent, ascii, sortState)

	case "shorthand_lint":
		src, _ := args["source"].(string)
		if src == "" {
			return "", fmt.Errorf("source parameter is required")
		}
		strict, _ := args["strict"].(bool)
		return s.executeLint(src, strict)

	case "shorthand_decompile":
		src, _ := args["source"].(string)
		if src == "" {
			return "", fmt.Errorf("source parameter is required")
		}
		role, _ := args["role"].(string)
		return s.executeDecompile(src, role)

	case "shorthand_implementation":
		codebase, _ := args["codebase"].(string)
		if codebase == "" {
			return "", fmt.Errorf("codebase parameter is required")
		}
		target, _ := args["target"].(string)
		if target == "" {
			return "", fmt.Errorf("target parameter is required")
		}
		withContext, _ := args["context"].(bool)
		return s.executeImplementation(codebase, target, withContext)

	case "shorthand_entity_details":
		codebase, _ := args["codebase"].(string)
		if codebase == "" {
			return "", fmt.Errorf("codebase parameter is required")
		}
		entityName, _ := args["name"].(string)
		if entityName == "" {
			return "", fmt.Errorf("name parameter is required")
		}
		return s.executeEntityDetails(codebase, entityName)

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}
