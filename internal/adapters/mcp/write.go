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

// RegisterWriteTools adds the replace tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store ports.RecordStore) {
	s.AddTool(previewReplaceTool(), previewReplaceHandler(store))
	s.AddTool(applyReplaceTool(), applyReplaceHandler(store))
}

// replaceRequest is the argument set shared by preview and apply
type replaceRequest struct {
	query application.Query
	find  string
	opts  commands.ReplaceOptions
}

func parseReplaceRequest(req mcp.CallToolRequest) (*replaceRequest, error) {
	if name := req.GetString("preset", ""); name != "" {
		p, ok := presets.Find(name)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s", name)
		}
		return &replaceRequest{
			query: application.Query{{
				Field:         p.Field,
				Pattern:       p.Find,
				Type:          p.FindType,
				CaseSensitive: p.CaseSensitive,
			}},
			find: p.Find,
			opts: commands.ReplaceOptions{
				Fields:        []string{p.Field},
				Type:          p.FindType,
				CaseSensitive: p.CaseSensitive,
				ReplaceWith:   p.ReplaceWith,
			},
		}, nil
	}

	find := req.GetString("find", "")
	if err := application.ValidateRequired("searchPattern", find); err != nil {
		return nil, err
	}
	field := req.GetString("field", "")
	if err := application.ValidateRequired("field", field); err != nil {
		return nil, err
	}
	patternType, err := application.ParsePatternType(req.GetString("pattern_type", "regex"))
	if err != nil {
		return nil, err
	}
	caseSensitive := req.GetBool("case_sensitive", false)

	return &replaceRequest{
		query: application.Query{{
			Field:         field,
			Pattern:       find,
			Type:          patternType,
			CaseSensitive: caseSensitive,
		}},
		find: find,
		opts: commands.ReplaceOptions{
			Fields:        []string{field},
			Type:          patternType,
			CaseSensitive: caseSensitive,
			ReplaceWith:   req.GetString("replace_with", ""),
		},
	}, nil
}

func withReplaceArgs(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("find",
			mcp.Description("Search pattern"),
		),
		mcp.WithString("replace_with",
			mcp.Description("Replacement template ($1..$9, ${name}, $&, $', $+)"),
		),
		mcp.WithString("field",
			mcp.Description("Field to rewrite (e.g. title, url, creator.lastName)"),
		),
		mcp.WithString("pattern_type",
			mcp.Description("Pattern semantics: regex, exact, contains, like, glob. Defaults to regex."),
		),
		mcp.WithBoolean("case_sensitive",
			mcp.Description("Match case sensitively. Defaults to false."),
		),
		mcp.WithString("preset",
			mcp.Description("Name of a preloaded preset; overrides find/replace_with/field"),
		),
	)
}

// --- preview_replace ---

func previewReplaceTool() mcp.Tool {
	return withReplaceArgs("preview_replace",
		"Preview a field replacement across matching records without modifying anything.")
}

func previewReplaceHandler(store ports.RecordStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r, err := parseReplaceRequest(req)
		if err != nil {
			return toolError(err)
		}

		results, err := commands.NewSearchCommand(store, r.query, commands.SearchOptions{}).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		total := 0
		for _, res := range results {
			changes, err := commands.PreviewFields(res.Record, r.find, r.opts)
			if err != nil {
				return toolError(err)
			}
			for _, c := range changes {
				fmt.Fprintf(&sb, "%d %s %s:\n  - %s\n  + %s\n",
					res.Record.ID, res.Record.Key, c.Field, c.Original, c.Replaced)
				total++
			}
		}
		if total == 0 {
			return mcp.NewToolResultText("No changes."), nil
		}
		fmt.Fprintf(&sb, "%d field change(s) across %d record(s).", total, len(results))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- apply_replace ---

func applyReplaceTool() mcp.Tool {
	return withReplaceArgs("apply_replace",
		"Apply a field replacement across matching records. Each record saves independently; one failure never aborts the batch.")
}

func applyReplaceHandler(store ports.RecordStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		r, err := parseReplaceRequest(req)
		if err != nil {
			return toolError(err)
		}

		results, err := commands.NewSearchCommand(store, r.query, commands.SearchOptions{}).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		records := make([]*application.Record, 0, len(results))
		for _, res := range results {
			records = append(records, res.Record)
		}

		batch := commands.NewBatchReplaceCommand(store, records, r.find, r.opts).Execute(ctx)

		var sb strings.Builder
		fmt.Fprintf(&sb, "Modified: %d\nSkipped: %d\nErrors: %d\n",
			batch.Modified, batch.Skipped, len(batch.Errors))
		for _, e := range batch.Errors {
			fmt.Fprintf(&sb, "  record %d: %s\n", e.RecordID, e.Message)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
