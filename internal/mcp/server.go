/*
Package mcp implements the MCP server that exposes the knowledge base to
coding agents.

The server uses stdio transport and exposes 4 tools:
  - learning_capture: capture a new learning
  - learning_search: relevance-ranked search over active learnings
  - learning_curate: run a curation pass (dry-run capable)
  - learning_stats: aggregate statistics

Every tool call loads the store document fresh and, for mutating tools,
writes it back whole; the server caches nothing across calls.
*/
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ankushdixit/insight-hub/internal/learning"
	"github.com/ankushdixit/insight-hub/internal/query"
	"github.com/ankushdixit/insight-hub/internal/store"
)

// Server represents the insight-hub MCP server.
type Server struct {
	storePath string
	engine    *learning.Engine
}

// NewServer creates an MCP server over the store document at storePath.
func NewServer(storePath string, engine *learning.Engine) *Server {
	return &Server{
		storePath: storePath,
		engine:    engine,
	}
}

// Run starts the MCP server using stdio transport. This blocks until stdin
// is closed.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := scanner.Bytes()

		response, err := s.handleRequest(line)
		if err != nil {
			s.sendError(err)
			continue
		}

		if response != nil {
			s.sendResponse(response)
		}
	}

	return scanner.Err()
}

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents an MCP error.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// handleRequest processes an incoming MCP request.
func (s *Server) handleRequest(data []byte) (*MCPResponse, error) {
	var req MCPRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC request: %w", err)
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req)
	case "tools/list":
		return s.handleToolsList(&req)
	case "tools/call":
		return s.handleToolsCall(&req)
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32601, Message: "Method not found"},
		}, nil
	}
}

// handleInitialize handles the MCP initialize request.
func (s *Server) handleInitialize(req *MCPRequest) (*MCPResponse, error) {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "insight-hub",
				"version": "0.1.0",
			},
		},
	}, nil
}

// handleToolsList returns the list of available tools.
func (s *Server) handleToolsList(req *MCPRequest) (*MCPResponse, error) {
	tools := []map[string]interface{}{
		{
			"name": "learning_capture",
			"description": fmt.Sprintf(`Capture a development insight into the knowledge base.

WHEN TO USE: After discovering something non-obvious, like a gotcha, a
surprising pattern, a performance finding, or a security concern.

Categories: %s (omit to auto-categorize on the next curation pass).`, strings.Join(store.Categories, ", ")),
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"content": map[string]interface{}{
						"type":        "string",
						"description": "The insight text",
					},
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Category (optional)",
						"enum":        store.Categories,
					},
					"tags": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Short lowercase tags (optional)",
					},
					"session": map[string]interface{}{
						"type":        "number",
						"description": "Session number this was captured in",
					},
					"context": map[string]interface{}{
						"type":        "string",
						"description": "Optional free-text context note",
					},
				},
				"required": []string{"content", "session"},
			},
		},
		{
			"name": "learning_search",
			"description": `Search the knowledge base with a free-text query.

Results are ranked by weighted lexical relevance: category matches outrank
tag matches, which outrank content matches. Partial token matches count
("auth" matches "authentication").`,
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Free-text search query",
					},
					"limit": map[string]interface{}{
						"type":        "number",
						"description": "Maximum results (default 10)",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			"name": "learning_curate",
			"description": `Run a curation pass: categorize, merge near-duplicates, archive stale entries.

Set dry_run=true to see what would change without touching the store.`,
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dry_run": map[string]interface{}{
						"type":        "boolean",
						"description": "Report changes without persisting them",
					},
					"session": map[string]interface{}{
						"type":        "number",
						"description": "Current session number (default: highest active session)",
					},
				},
			},
		},
		{
			"name":        "learning_stats",
			"description": `Aggregate statistics: counts per category, top tags, recent growth.`,
			"inputSchema": map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": tools,
		},
	}, nil
}

// handleToolsCall handles tool execution requests.
func (s *Server) handleToolsCall(req *MCPRequest) (*MCPResponse, error) {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}

	var result string
	var err error

	switch params.Name {
	case "learning_capture":
		result, err = s.execCapture(params.Arguments)
	case "learning_search":
		queryText, _ := params.Arguments["query"].(string)
		limit, _ := params.Arguments["limit"].(float64)
		result, err = s.execSearch(queryText, int(limit))
	case "learning_curate":
		dryRun, _ := params.Arguments["dry_run"].(bool)
		session, _ := params.Arguments["session"].(float64)
		result, err = s.execCurate(dryRun, int(session))
	case "learning_stats":
		result, err = s.execStats()
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32602, Message: fmt.Sprintf("Unknown tool: %s", params.Name)},
		}, nil
	}

	if err != nil {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: -32000, Message: err.Error()},
		}, nil
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": result,
				},
			},
		},
	}, nil
}

// execCapture adds a learning and persists the store.
func (s *Server) execCapture(args map[string]interface{}) (string, error) {
	content, _ := args["content"].(string)
	category, _ := args["category"].(string)
	context, _ := args["context"].(string)
	session, _ := args["session"].(float64)

	var tags []string
	if rawTags, ok := args["tags"].([]interface{}); ok {
		for _, t := range rawTags {
			if tag, ok := t.(string); ok {
				tags = append(tags, tag)
			}
		}
	}

	col, err := store.LoadOrInit(s.storePath)
	if err != nil {
		return "", err
	}

	l, err := s.engine.Add(col, content, category, tags, int(session), context, time.Now().UTC())
	if err != nil {
		return "", err
	}

	if err := store.Save(col, s.storePath); err != nil {
		return "", err
	}

	return fmt.Sprintf("Captured learning %s (category: %s)", l.ID, l.Category), nil
}

// execSearch runs the weighted lexical search.
func (s *Server) execSearch(queryText string, limit int) (string, error) {
	if limit <= 0 {
		limit = 10
	}

	col, err := store.LoadOrInit(s.storePath)
	if err != nil {
		return "", err
	}

	hits := query.Search(col, queryText)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	if len(hits) == 0 {
		return "No matching learnings.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d learning(s):\n", len(hits))
	for _, hit := range hits {
		fmt.Fprintf(&b, "  • [%s] (%.1f) %s: %s\n",
			hit.Learning.ID, hit.Score, hit.Learning.Category, hit.Learning.Content)
	}
	return b.String(), nil
}

// execCurate runs a curation pass, persisting only when dryRun is false.
func (s *Server) execCurate(dryRun bool, session int) (string, error) {
	col, err := store.LoadOrInit(s.storePath)
	if err != nil {
		return "", err
	}

	if dryRun {
		col = col.Clone()
	}

	report := s.engine.Curate(col, session, time.Now().UTC())
	report.DryRun = dryRun

	if !dryRun {
		if err := store.Save(col, s.storePath); err != nil {
			return "", err
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// execStats returns aggregate statistics as JSON.
func (s *Server) execStats() (string, error) {
	col, err := store.LoadOrInit(s.storePath)
	if err != nil {
		return "", err
	}

	stats := query.Statistics(col, 10, 5)
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sendResponse writes a JSON-RPC response to stdout.
func (s *Server) sendResponse(resp *MCPResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}

// sendError writes a JSON-RPC parse error to stdout.
func (s *Server) sendError(err error) {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		Error:   &MCPError{Code: -32700, Message: err.Error()},
	}
	s.sendResponse(resp)
}
