package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"refield/internal/application"
	"refield/internal/application/commands"
	"refield/internal/ports"
	"refield/internal/presets"
)

// RegisterReadTools adds all read-only record tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.RecordStore) {
	s.AddTool(searchTool(), searchHandler(store))
	s.AddTool(listFieldsTool(), listFieldsHandler())
	s.AddTool(listPresetsTool(), listPresetsHandler())
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search record fields by pattern. Returns matching records with the fields and values that matched."),
		mcp.WithString("pattern",
			mcp.Description("Search pattern"),
			mcp.Required(),
		),
		mcp.WithString("field",
			mcp.Description("Field to search (e.g. title, url, creator.lastName, tag, itemType). Defaults to title."),
		),
		mcp.WithString("pattern_type",
			mcp.Description("Pattern semantics: regex, exact, contains, like, glob. Defaults to contains."),
		),
		mcp.WithBoolean("case_sensitive",
			mcp.Description("Match case sensitively. Defaults to false."),
		),
	)
}

func searchHandler(store ports.RecordStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pattern := req.GetString("pattern", "")
		if err := application.ValidateRequired("searchPattern", pattern); err != nil {
			return toolError(err)
		}
		field := req.GetString("field", "title")

		patternType, err := application.ParsePatternType(req.GetString("pattern_type", "contains"))
		if err != nil {
			return toolError(err)
		}

		query := application.Query{{
			Field:         field,
			Pattern:       pattern,
			Type:          patternType,
			CaseSensitive: req.GetBool("case_sensitive", false),
		}}
		results, err := commands.NewSearchCommand(store, query, commands.SearchOptions{}).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return formatResults(results)
	}
}

// --- list_fields ---

func listFieldsTool() mcp.Tool {
	return mcp.NewTool("list_fields",
		mcp.WithDescription("List the field identifiers understood by search and replace."),
	)
}

func listFieldsHandler() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var sb strings.Builder
		sb.WriteString("Scalar fields: any stored field name, e.g. title, abstractNote, url, DOI, ISBN, extra, publicationTitle, date\n")
		sb.WriteString("Creator sub-fields: creator.firstName, creator.lastName, creator.fullName\n")
		sb.WriteString("Set fields: tag\n")
		sb.WriteString("Computed fields: itemType (matched by display name), collection (matched by numeric id)\n")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_presets ---

func listPresetsTool() mcp.Tool {
	return mcp.NewTool("list_presets",
		mcp.WithDescription("List the preloaded cleanup presets usable with apply_replace."),
	)
}

func listPresetsHandler() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return formatEntities(presets.All(), func(p presets.Preset) string {
			return fmt.Sprintf("%s  [%s]  %s", p.Name, p.Field, p.Description)
		})
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatResults(results []application.SearchResult) (*mcp.CallToolResult, error) {
	return formatEntities(results, func(r application.SearchResult) string {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d  %s  %s", r.Record.ID, r.Record.Key, r.Record.Field("title"))
		for _, d := range r.MatchDetails {
			fmt.Fprintf(&sb, "\n    %s: %s", d.Field, d.Value)
		}
		return sb.String()
	})
}
