// Package mcp exposes the class-specification generator as MCP tools over
// stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/project-classdoc/internal/generator"
	"github.com/mvp-joe/project-classdoc/internal/logging"
	"github.com/mvp-joe/project-classdoc/internal/parsers"
	"github.com/sirupsen/logrus"
)

const (
	serverName = "classdoc-mcp"

	// ListTypesToolName names the read-only model listing tool.
	ListTypesToolName = "classdoc_list_types"
	// GenerateToolName names the document generation tool.
	GenerateToolName = "classdoc_generate"
)

// Server serves the classdoc tools for one source root.
type Server struct {
	base   generator.Options
	gen    *generator.Generator
	logger logrus.FieldLogger
	mcp    *server.MCPServer

	// mu serializes generator runs; each tool call is a complete run.
	mu sync.Mutex
}

// NewServer creates a server whose tool calls start from base. Tool
// arguments override the output, format, start index, title and selections.
func NewServer(base generator.Options, version string, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		base:   base,
		gen:    generator.New(logger, nil),
		logger: logger,
		mcp: server.NewMCPServer(
			serverName,
			version,
			server.WithToolCapabilities(true),
		),
	}
	s.addListTypesTool()
	s.addGenerateTool()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("root", s.base.Root).Info("starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		s.logger.Info("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SelectionRequest narrows the files and types of a tool call.
type SelectionRequest struct {
	Files   []string `json:"files,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
	Classes []string `json:"classes,omitempty"`
}

// GenerateRequest holds classdoc_generate arguments.
type GenerateRequest struct {
	Output     string   `json:"output,omitempty"`
	Format     string   `json:"format,omitempty"`
	StartIndex int      `json:"start_index,omitempty"`
	Title      string   `json:"title,omitempty"`
	Files      []string `json:"files,omitempty"`
	Exclude    []string `json:"exclude,omitempty"`
	Classes    []string `json:"classes,omitempty"`
}

// TypeSummary describes one numbered type in a listing.
type TypeSummary struct {
	Label      string `json:"label"`
	Namespace  string `json:"namespace"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Summary    string `json:"summary,omitempty"`
	Attributes int    `json:"attributes"`
	Methods    int    `json:"methods"`
}

// ListTypesResponse is the classdoc_list_types result.
type ListTypesResponse struct {
	RunID string        `json:"run_id"`
	Files []string      `json:"files"`
	Types []TypeSummary `json:"types"`
	Total int           `json:"total"`
}

// GenerateResponse is the classdoc_generate result.
type GenerateResponse struct {
	RunID  string   `json:"run_id"`
	Output string   `json:"output"`
	Files  []string `json:"files"`
	Types  int      `json:"types"`
	Bytes  int      `json:"bytes"`
}

func selectionOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithArray("files",
			mcp.Description("Root-relative files or folders to include (default: every eligible file)")),
		mcp.WithArray("exclude",
			mcp.Description("Root-relative files or folders to leave out")),
		mcp.WithArray("classes",
			mcp.Description("Type patterns over Namespace.Name or Name; '*' stops at dots, '**' does not")),
	}
}

func (s *Server) addListTypesTool() {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("List the types that would be documented, with their section numbers, without writing a document."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	}, selectionOptions()...)
	s.mcp.AddTool(mcp.NewTool(ListTypesToolName, opts...), s.handleListTypes)
}

func (s *Server) addGenerateTool() {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Generate the class specification document and write it under the source root."),
		mcp.WithString("output",
			mcp.Description("Output path, relative to the source root unless absolute")),
		mcp.WithString("format",
			mcp.Description("docx or markdown (default: inferred from the output extension)")),
		mcp.WithNumber("start_index",
			mcp.Description("First section number (positive integer)")),
		mcp.WithString("title",
			mcp.Description("Document title")),
		mcp.WithDestructiveHintAnnotation(false),
	}, selectionOptions()...)
	s.mcp.AddTool(mcp.NewTool(GenerateToolName, opts...), s.handleGenerate)
}

func (s *Server) handleListTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req SelectionRequest
	if err := bindArguments(request, &req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	opts := s.base
	opts.Files = req.Files
	opts.Exclude = req.Exclude
	opts.Classes = req.Classes

	s.mu.Lock()
	m, err := s.gen.BuildModel(ctx, opts)
	s.mu.Unlock()
	if err != nil {
		return toolError(err)
	}

	resp := ListTypesResponse{
		RunID: m.RunID,
		Files: m.Files,
		Types: []TypeSummary{},
	}
	for _, sec := range m.Sections {
		if sec.IsNamespace() {
			continue
		}
		e := sec.Entity
		resp.Types = append(resp.Types, TypeSummary{
			Label:      sec.Label(),
			Namespace:  e.Namespace,
			Name:       e.Name,
			Kind:       string(e.Kind),
			Summary:    e.Summary,
			Attributes: len(e.Attributes),
			Methods:    len(e.Methods),
		})
	}
	resp.Total = len(resp.Types)
	return marshalToolResponse(resp)
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var req GenerateRequest
	if err := bindArguments(request, &req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	opts := s.base
	if req.Output != "" {
		opts.Output = req.Output
		opts.Format = ""
	}
	if req.Format != "" {
		opts.Format = req.Format
	}
	if req.StartIndex != 0 {
		opts.StartIndex = req.StartIndex
	}
	if req.Title != "" {
		opts.Title = req.Title
	}
	opts.Files = req.Files
	opts.Exclude = req.Exclude
	opts.Classes = req.Classes

	s.mu.Lock()
	result, err := s.gen.Run(ctx, opts)
	s.mu.Unlock()
	if err != nil {
		return toolError(err)
	}

	return marshalToolResponse(GenerateResponse{
		RunID:  result.RunID,
		Output: result.Output,
		Files:  result.Files,
		Types:  result.Types,
		Bytes:  result.Bytes,
	})
}

// toolError reports run failures the caller can act on as tool errors and
// returns anything else as a protocol error.
func toolError(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, generator.ErrValidation) || errors.Is(err, generator.ErrIO) || errors.Is(err, parsers.ErrParse) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

func marshalToolResponse(response any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
