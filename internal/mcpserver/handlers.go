package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cppintel/mcp-cpp-bridge/internal/analyzer"
	"github.com/cppintel/mcp-cpp-bridge/internal/build"
	"github.com/cppintel/mcp-cpp-bridge/internal/lsptypes"
)

// buildDirPayload is one build directory, shaped for the MCP response.
type buildDirPayload struct {
	Path               string `json:"path"`
	BuildType          string `json:"build_type"`
	HasCompileCommands bool   `json:"has_compile_commands"`
	Generator          string `json:"generator,omitempty"`
}

func directoryPayloads(dirs []build.Directory) ([]buildDirPayload, []string) {
	payloads := make([]buildDirPayload, 0, len(dirs))
	var issues []string
	for _, d := range dirs {
		payloads = append(payloads, buildDirPayload{
			Path:               d.Path,
			BuildType:          d.BuildType.String(),
			HasCompileCommands: d.HasCompileCommands(),
			Generator:          d.Generator,
		})
		for _, issue := range d.Issues {
			issues = append(issues, d.Path+": "+issue)
		}
	}
	return payloads, issues
}

// handleProjectStatus implements cpp_project_status (§6).
func (s *Server) handleProjectStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := build.Discover(s.cfg.WorkingDir)
	if err != nil {
		return toolResult(errorEnvelope(err))
	}

	dirs, issues := directoryPayloads(result.Directories)
	return toolResult(successEnvelope(map[string]interface{}{
		"project_type":    result.ProjectType,
		"is_configured":   result.IsConfigured,
		"build_directories": dirs,
	}, issues))
}

// handleListBuildDirs implements list_build_dirs (§6).
func (s *Server) handleListBuildDirs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := build.Discover(s.cfg.WorkingDir)
	if err != nil {
		return toolResult(errorEnvelope(err))
	}

	dirs, issues := directoryPayloads(result.Directories)
	return toolResult(successEnvelope(map[string]interface{}{
		"build_directories": dirs,
	}, issues))
}

// handleSearchSymbols implements search_symbols (§6).
func (s *Server) handleSearchSymbols(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	kind := request.GetString("kind", "")
	limit := request.GetInt("limit", 20)

	a, err := s.analyzer(ctx)
	if err != nil {
		return toolResult(errorEnvelope(err))
	}

	result, err := a.Search(ctx, query, kind, limit)
	if err != nil {
		return toolResult(errorEnvelope(err))
	}

	data := map[string]interface{}{"matches": result.Matches}
	var issues []string
	if result.PartialIndex {
		issues = append(issues, "partial_index: workspace indexing had not completed when this search ran")
	}
	return toolResult(successEnvelope(data, issues))
}

// handleAnalyzeSymbolContext implements analyze_symbol_context (§6).
func (s *Server) handleAnalyzeSymbolContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol := request.GetString("symbol", "")
	if symbol == "" {
		return mcp.NewToolResultError("symbol parameter is required"), nil
	}

	req := analyzer.Request{
		Query:                 symbol,
		IncludeUsagePatterns:  request.GetBool("include_usage_patterns", true),
		MaxUsageExamples:      request.GetInt("max_usage_examples", analyzer.DefaultMaxUsageExamples),
		IncludeInheritance:    request.GetBool("include_inheritance", true),
	}

	if fileURI := request.GetString("file_uri", ""); fileURI != "" {
		line := request.GetInt("line", 1)
		column := request.GetInt("column", 1)
		req.Anchor = &analyzer.Anchor{
			URI: fileURI,
			Position: lsptypes.Position{
				Line:      line - 1,
				Character: column - 1,
			},
		}
	}

	a, err := s.analyzer(ctx)
	if err != nil {
		return toolResult(errorEnvelope(err))
	}

	result, err := a.AnalyzeSymbolContext(ctx, req)
	if err != nil {
		return toolResult(errorEnvelope(err))
	}

	var issues []string
	if result.PartialIndex {
		issues = append(issues, "partial_index: workspace indexing had not completed when this query ran")
	}
	if result.NotFound {
		issues = append(issues, "not_found: no symbol matched the query; see suggestions for near misses")
	}
	if result.Ambiguous {
		issues = append(issues, "ambiguous: multiple candidates matched the query; see candidates")
	}
	if result.InheritanceSkipped != "" {
		issues = append(issues, "inheritance skipped: "+result.InheritanceSkipped)
	}
	if result.CallersSkipped != "" {
		issues = append(issues, "callers skipped: "+result.CallersSkipped)
	}
	if result.CalleesSkipped != "" {
		issues = append(issues, "callees skipped: "+result.CalleesSkipped)
	}
	if result.UsagesSkipped != "" {
		issues = append(issues, "usages skipped: "+result.UsagesSkipped)
	}

	data := map[string]interface{}{"result": result}
	return toolResult(successEnvelope(data, issues))
}
