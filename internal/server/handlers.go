package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lox/notion-mcp/internal/notion"
	"github.com/lox/notion-mcp/internal/output"
)

// respond renders a successful gateway result in the requested format.
func respond(req mcp.CallToolRequest, data any, label string) *mcp.CallToolResult {
	format, err := output.ParseFormat(req.GetString("format", string(output.FormatMarkdown)))
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	res := output.Render(data, format, label)
	return mcp.NewToolResultText(res.Text)
}

// fail renders any failure through the error renderer. Classification already
// happened in the gateway; nothing here inspects status codes.
func fail(err error) *mcp.CallToolResult {
	res := output.RenderError(err)
	return mcp.NewToolResultError(res.Text)
}

func pageParams(req mcp.CallToolRequest) notion.PageParams {
	return notion.PageParams{
		StartCursor: req.GetString("cursor", ""),
		PageSize:    req.GetInt("page_size", 0),
	}
}

func objectArg(req mcp.CallToolRequest, name string) map[string]any {
	v, _ := req.GetArguments()[name].(map[string]any)
	return v
}

func arrayArg(req mcp.CallToolRequest, name string) []any {
	v, _ := req.GetArguments()[name].([]any)
	return v
}

// Users

func (s *Server) handleListUsers(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.clientFor(ctx).ListUsers(ctx, pageParams(req))
	if err != nil {
		return fail(err), nil
	}
	return respond(req, list, "users"), nil
}

func (s *Server) handleGetUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	user, err := s.clientFor(ctx).GetUser(ctx, userID)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, user, "users"), nil
}

func (s *Server) handleGetSelf(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := s.clientFor(ctx).GetSelf(ctx)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, user, "users"), nil
}

// Pages

func (s *Server) handleGetPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := req.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, err := s.clientFor(ctx).GetPage(ctx, pageID)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, page, "pages"), nil
}

func (s *Server) handleCreatePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]any{}
	for _, key := range []string{"parent", "properties", "icon", "cover"} {
		if v := objectArg(req, key); v != nil {
			body[key] = v
		}
	}
	if children := arrayArg(req, "children"); children != nil {
		body["children"] = children
	}

	page, err := s.clientFor(ctx).CreatePage(ctx, body)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, page, "pages"), nil
}

func (s *Server) handleUpdatePage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := req.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	patch := map[string]any{}
	for _, key := range []string{"properties", "icon", "cover"} {
		if v := objectArg(req, key); v != nil {
			patch[key] = v
		}
	}
	if archived, ok := req.GetArguments()["archived"].(bool); ok {
		patch["archived"] = archived
	}

	page, err := s.clientFor(ctx).UpdatePage(ctx, pageID, patch)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, page, "pages"), nil
}

func (s *Server) handleTrashPage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := req.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, err := s.clientFor(ctx).TrashPage(ctx, pageID)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, page, "pages"), nil
}

func (s *Server) handleGetPageProperty(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pageID, err := req.RequireString("page_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	propertyID, err := req.RequireString("property_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	property, err := s.clientFor(ctx).GetPageProperty(ctx, pageID, propertyID, pageParams(req))
	if err != nil {
		return fail(err), nil
	}
	return respond(req, property, "properties"), nil
}

// Databases

func (s *Server) handleGetDatabase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	databaseID, err := req.RequireString("database_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	database, err := s.clientFor(ctx).GetDatabase(ctx, databaseID)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, database, "databases"), nil
}

func (s *Server) handleQueryDatabase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	databaseID, err := req.RequireString("database_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := s.clientFor(ctx).QueryDatabase(ctx, databaseID, notion.QueryParams{
		Filter: objectArg(req, "filter"),
		Sorts:  arrayArg(req, "sorts"),
		Page:   pageParams(req),
	})
	if err != nil {
		return fail(err), nil
	}
	return respond(req, list, "pages"), nil
}

func (s *Server) handleCreateDatabase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]any{}
	if parent := objectArg(req, "parent"); parent != nil {
		body["parent"] = parent
	}
	if title := arrayArg(req, "title"); title != nil {
		body["title"] = title
	}
	if properties := objectArg(req, "properties"); properties != nil {
		body["properties"] = properties
	}

	database, err := s.clientFor(ctx).CreateDatabase(ctx, body)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, database, "databases"), nil
}

func (s *Server) handleUpdateDatabase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	databaseID, err := req.RequireString("database_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	patch := map[string]any{}
	if title := arrayArg(req, "title"); title != nil {
		patch["title"] = title
	}
	if description := arrayArg(req, "description"); description != nil {
		patch["description"] = description
	}
	if properties := objectArg(req, "properties"); properties != nil {
		patch["properties"] = properties
	}

	database, err := s.clientFor(ctx).UpdateDatabase(ctx, databaseID, patch)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, database, "databases"), nil
}

// Blocks

func (s *Server) handleGetBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := req.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	block, err := s.clientFor(ctx).GetBlock(ctx, blockID)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, block, "blocks"), nil
}

func (s *Server) handleUpdateBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := req.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	patch := objectArg(req, "block")
	if patch == nil {
		return mcp.NewToolResultError("block argument is required"), nil
	}

	block, err := s.clientFor(ctx).UpdateBlock(ctx, blockID, patch)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, block, "blocks"), nil
}

func (s *Server) handleDeleteBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := req.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	block, err := s.clientFor(ctx).DeleteBlock(ctx, blockID)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, block, "blocks"), nil
}

func (s *Server) handleListBlockChildren(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := req.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := s.clientFor(ctx).ListBlockChildren(ctx, blockID, pageParams(req))
	if err != nil {
		return fail(err), nil
	}
	return respond(req, list, "blocks"), nil
}

func (s *Server) handleAppendBlockChildren(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := req.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	children := arrayArg(req, "children")
	if len(children) == 0 {
		return mcp.NewToolResultError("children argument is required"), nil
	}

	list, err := s.clientFor(ctx).AppendBlockChildren(ctx, blockID, children)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, list, "blocks"), nil
}

// Search

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := s.clientFor(ctx).Search(ctx, notion.SearchParams{
		Query:  req.GetString("query", ""),
		Filter: objectArg(req, "filter"),
		Sort:   objectArg(req, "sort"),
		Page:   pageParams(req),
	})
	if err != nil {
		return fail(err), nil
	}
	return respond(req, list, "results"), nil
}

// Comments

func (s *Server) handleListComments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blockID, err := req.RequireString("block_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := s.clientFor(ctx).ListComments(ctx, blockID, pageParams(req))
	if err != nil {
		return fail(err), nil
	}
	return respond(req, list, "comments"), nil
}

func (s *Server) handleCreateComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	richText := arrayArg(req, "rich_text")
	if len(richText) == 0 {
		return mcp.NewToolResultError("rich_text argument is required"), nil
	}

	body := map[string]any{"rich_text": richText}
	if parent := objectArg(req, "parent"); parent != nil {
		body["parent"] = parent
	}
	if discussionID := req.GetString("discussion_id", ""); discussionID != "" {
		body["discussion_id"] = discussionID
	}

	comment, err := s.clientFor(ctx).CreateComment(ctx, body)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, comment, "comments"), nil
}

func (s *Server) handleGetComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	commentID, err := req.RequireString("comment_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	comment, err := s.clientFor(ctx).GetComment(ctx, commentID)
	if err != nil {
		return fail(err), nil
	}
	return respond(req, comment, "comments"), nil
}

// Diagnostics

// handleTestConnection deliberately downgrades failures to a plain message:
// its contract is a best-effort human diagnostic, not a machine-actionable
// error.
func (s *Server) handleTestConnection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := s.clientFor(ctx).GetSelf(ctx)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Connection failed: %s", err.Error())), nil
	}

	name := user.Name
	if name == "" {
		name = user.ID
	}
	return mcp.NewToolResultText(fmt.Sprintf("Connected to Notion as %q (%s)", name, user.ID)), nil
}
