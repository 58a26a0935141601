package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/agent-boot/schema"
	"github.com/SaiNageswarS/bible-rag-custom-gpt/bible"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScriptureSearcher is the retrieval capability behind the search tool.
type ScriptureSearcher interface {
	Run(ctx context.Context, query string) <-chan *schema.ToolResultChunk
}

// Server exposes verse lookup and scripture search as MCP tools over stdio,
// so the same retrieval pipeline that backs the HTTP surface is usable from
// MCP-speaking clients.
type Server struct {
	mcpServer *mcp.Server
	fetcher   *bible.Fetcher
	tool      ScriptureSearcher
}

// NewServer builds the MCP server. tool may be nil for lookup-only
// deployments without a passage store attached.
func NewServer(fetcher *bible.Fetcher, tool ScriptureSearcher) (*Server, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "bible-rag",
			Version: "1.0.0",
		}, nil),
		fetcher: fetcher,
		tool:    tool,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}
	return s, nil
}

// Run starts the MCP server on the given transport. Blocking.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

// LookupVerseInput is the input schema for the lookup_verse tool.
type LookupVerseInput struct {
	Reference string `json:"reference" jsonschema:"A scripture reference, e.g. 'John 3:16', 'John 3:16-18' or 'Gen 1:1-2:3'"`
}

// SearchScriptureInput is the input schema for the search_scripture tool.
type SearchScriptureInput struct {
	Query string `json:"query" jsonschema:"Free-text question or topic to search scripture passages for"`
}

func (s *Server) registerTools() error {
	lookupSchema, err := jsonschema.For[LookupVerseInput](nil)
	if err != nil {
		return fmt.Errorf("schema for lookup_verse: %w", err)
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "lookup_verse",
		Description: "Resolve a scripture reference to verse text. " +
			"Ranges are expanded into individual verses.",
		InputSchema: lookupSchema,
	}, s.LookupVerse)

	if s.tool == nil {
		return nil
	}

	searchSchema, err := jsonschema.For[SearchScriptureInput](nil)
	if err != nil {
		return fmt.Errorf("schema for search_scripture: %w", err)
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: "search_scripture",
		Description: "Search indexed scripture passages and commentary by topic " +
			"using hybrid full-text and semantic search.",
		InputSchema: searchSchema,
	}, s.SearchScripture)

	return nil
}

// LookupVerse handles the lookup_verse MCP tool call.
func (s *Server) LookupVerse(ctx context.Context, _ *mcp.CallToolRequest, input LookupVerseInput) (*mcp.CallToolResult, any, error) {
	ref := strings.TrimSpace(input.Reference)
	if ref == "" {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "reference must not be empty"}},
			IsError: true,
		}, nil, nil
	}

	var lines []string
	for _, v := range s.fetcher.FetchRange(ctx, ref) {
		if v.OK {
			lines = append(lines, fmt.Sprintf("%s: %s", v.Ref, v.Text))
		}
	}

	if len(lines) == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("no verses found for %q", ref)}},
			IsError: true,
		}, nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: strings.Join(lines, "\n")}},
	}, nil, nil
}

// SearchScripture handles the search_scripture MCP tool call.
func (s *Server) SearchScripture(ctx context.Context, _ *mcp.CallToolRequest, input SearchScriptureInput) (*mcp.CallToolResult, any, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "query must not be empty"}},
			IsError: true,
		}, nil, nil
	}

	var sections []string
	for chunk := range s.tool.Run(ctx, query) {
		if chunk.Error != "" {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: chunk.Error}},
				IsError: true,
			}, nil, nil
		}
		if len(chunk.Sentences) == 0 {
			continue
		}
		sections = append(sections, fmt.Sprintf("## %s (%s)\n%s",
			chunk.Title, chunk.Attribution, strings.Join(chunk.Sentences, " ")))
	}

	if len(sections) == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "no passages matched the query"}},
		}, nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: strings.Join(sections, "\n\n")}},
	}, nil, nil
}
