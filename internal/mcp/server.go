package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/CalleFreme/ai-methods-explorer/internal/service"
)

type Server struct {
	mcpServer       *server.MCPServer
	analysisService *service.AnalysisService
}

func NewServer(analysisService *service.AnalysisService) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"AI Methods Explorer",
			"1.0.0",
			server.WithToolCapabilities(true),
		),
		analysisService: analysisService,
	}

	s.registerTools()
	return s
}

func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_methods",
			mcp.WithDescription("List the available text-analysis methods"),
		),
		s.handleListMethods,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"summarize",
			mcp.WithDescription("Summarize a text (inputs beyond 512 words are truncated)"),
			mcp.WithString("text", mcp.Required(), mcp.Description("The text to summarize")),
		),
		s.handleSummarize,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"analyze_sentiment",
			mcp.WithDescription("Classify the sentiment of a text (inputs beyond 512 words are truncated)"),
			mcp.WithString("text", mcp.Required(), mcp.Description("The text to classify")),
		),
		s.handleAnalyzeSentiment,
	)
}

func (s *Server) handleListMethods(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, _ := json.Marshal(s.analysisService.Methods())
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleSummarize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	text, ok := args["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("Missing required parameter: text"), nil
	}

	result, err := s.analysisService.Summarize(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to summarize: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(result)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleAnalyzeSentiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	text, ok := args["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("Missing required parameter: text"), nil
	}

	result, err := s.analysisService.Sentiment(ctx, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze sentiment: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(result)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func MountHTTPHandlers(mux *http.ServeMux, mcpServer *server.MCPServer) {
	// Use SSE server for /mcp/sse and /mcp/message endpoints
	sseServer := server.NewSSEServer(mcpServer, server.WithStaticBasePath("/mcp"))

	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		// Direct POST for tool calls
		if r.Method == http.MethodPost {
			sseServer.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// SSE endpoints
	mux.HandleFunc("/mcp/sse", sseServer.ServeHTTP)
	mux.HandleFunc("/mcp/message", sseServer.ServeHTTP)
}
