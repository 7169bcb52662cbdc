package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools declares every gateway operation as an MCP tool. One tool per
// operation, plus a connection test.
func (s *Server) registerTools() {
	formatOpt := mcp.WithString("format",
		mcp.Description("Response format: json round-trips the API payload, markdown is a human-readable summary"),
		mcp.Enum("json", "markdown"),
		mcp.DefaultString("markdown"),
	)
	cursorOpt := mcp.WithString("cursor",
		mcp.Description("Opaque pagination cursor returned by a previous call"),
	)
	pageSizeOpt := mcp.WithNumber("page_size",
		mcp.Description("Number of items to return (1-100)"),
	)

	// Users

	s.addTool(mcp.NewTool("notion_list_users",
		mcp.WithDescription("List all users in the workspace"),
		cursorOpt, pageSizeOpt, formatOpt,
	), s.handleListUsers)

	s.addTool(mcp.NewTool("notion_get_user",
		mcp.WithDescription("Retrieve a user by ID"),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("ID of the user")),
		formatOpt,
	), s.handleGetUser)

	s.addTool(mcp.NewTool("notion_get_self",
		mcp.WithDescription("Retrieve the bot user the token belongs to"),
		formatOpt,
	), s.handleGetSelf)

	// Pages

	s.addTool(mcp.NewTool("notion_get_page",
		mcp.WithDescription("Retrieve a page by ID"),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("ID of the page")),
		formatOpt,
	), s.handleGetPage)

	s.addTool(mcp.NewTool("notion_create_page",
		mcp.WithDescription("Create a new page under a page or database parent"),
		mcp.WithObject("parent", mcp.Required(), mcp.Description("Parent reference, e.g. {\"page_id\": \"...\"} or {\"database_id\": \"...\"}")),
		mcp.WithObject("properties", mcp.Required(), mcp.Description("Page property values keyed by property name")),
		mcp.WithArray("children", mcp.Description("Optional content blocks for the new page")),
		mcp.WithObject("icon", mcp.Description("Optional page icon")),
		mcp.WithObject("cover", mcp.Description("Optional page cover")),
		formatOpt,
	), s.handleCreatePage)

	s.addTool(mcp.NewTool("notion_update_page",
		mcp.WithDescription("Update a page's properties, archive state, icon or cover"),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("ID of the page")),
		mcp.WithObject("properties", mcp.Description("Property values to update")),
		mcp.WithBoolean("archived", mcp.Description("Set the archived state")),
		mcp.WithObject("icon", mcp.Description("New page icon")),
		mcp.WithObject("cover", mcp.Description("New page cover")),
		formatOpt,
	), s.handleUpdatePage)

	s.addTool(mcp.NewTool("notion_trash_page",
		mcp.WithDescription("Move a page to the trash"),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("ID of the page")),
		formatOpt,
	), s.handleTrashPage)

	s.addTool(mcp.NewTool("notion_get_page_property",
		mcp.WithDescription("Retrieve a single property item from a page"),
		mcp.WithString("page_id", mcp.Required(), mcp.Description("ID of the page")),
		mcp.WithString("property_id", mcp.Required(), mcp.Description("ID of the property")),
		cursorOpt, pageSizeOpt, formatOpt,
	), s.handleGetPageProperty)

	// Databases

	s.addTool(mcp.NewTool("notion_get_database",
		mcp.WithDescription("Retrieve a database by ID"),
		mcp.WithString("database_id", mcp.Required(), mcp.Description("ID of the database")),
		formatOpt,
	), s.handleGetDatabase)

	s.addTool(mcp.NewTool("notion_query_database",
		mcp.WithDescription("Query a database with optional filter and sorts"),
		mcp.WithString("database_id", mcp.Required(), mcp.Description("ID of the database")),
		mcp.WithObject("filter", mcp.Description("Filter object, passed through to the API verbatim")),
		mcp.WithArray("sorts", mcp.Description("Sort objects, passed through to the API verbatim")),
		cursorOpt, pageSizeOpt, formatOpt,
	), s.handleQueryDatabase)

	s.addTool(mcp.NewTool("notion_create_database",
		mcp.WithDescription("Create a new database under a page parent"),
		mcp.WithObject("parent", mcp.Required(), mcp.Description("Parent reference, e.g. {\"page_id\": \"...\"}")),
		mcp.WithArray("title", mcp.Description("Database title as a rich text array")),
		mcp.WithObject("properties", mcp.Required(), mcp.Description("Database schema keyed by property name")),
		formatOpt,
	), s.handleCreateDatabase)

	s.addTool(mcp.NewTool("notion_update_database",
		mcp.WithDescription("Update a database's title, description or schema"),
		mcp.WithString("database_id", mcp.Required(), mcp.Description("ID of the database")),
		mcp.WithArray("title", mcp.Description("New title as a rich text array")),
		mcp.WithArray("description", mcp.Description("New description as a rich text array")),
		mcp.WithObject("properties", mcp.Description("Schema changes keyed by property name")),
		formatOpt,
	), s.handleUpdateDatabase)

	// Blocks

	s.addTool(mcp.NewTool("notion_get_block",
		mcp.WithDescription("Retrieve a block by ID"),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("ID of the block")),
		formatOpt,
	), s.handleGetBlock)

	s.addTool(mcp.NewTool("notion_update_block",
		mcp.WithDescription("Update a block's content"),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("ID of the block")),
		mcp.WithObject("block", mcp.Required(), mcp.Description("Block patch, passed through to the API verbatim")),
		formatOpt,
	), s.handleUpdateBlock)

	s.addTool(mcp.NewTool("notion_delete_block",
		mcp.WithDescription("Move a block to the trash"),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("ID of the block")),
		formatOpt,
	), s.handleDeleteBlock)

	s.addTool(mcp.NewTool("notion_list_block_children",
		mcp.WithDescription("List the child blocks of a block or page"),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("ID of the block or page")),
		cursorOpt, pageSizeOpt, formatOpt,
	), s.handleListBlockChildren)

	s.addTool(mcp.NewTool("notion_append_block_children",
		mcp.WithDescription("Append child blocks to a block or page"),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("ID of the block or page")),
		mcp.WithArray("children", mcp.Required(), mcp.Description("Block objects to append, passed through verbatim")),
		formatOpt,
	), s.handleAppendBlockChildren)

	// Search

	s.addTool(mcp.NewTool("notion_search",
		mcp.WithDescription("Search pages and databases shared with the integration"),
		mcp.WithString("query", mcp.Description("Search query; empty returns everything shared")),
		mcp.WithObject("filter", mcp.Description("Filter object, e.g. {\"property\": \"object\", \"value\": \"page\"}")),
		mcp.WithObject("sort", mcp.Description("Sort object, passed through verbatim")),
		cursorOpt, pageSizeOpt, formatOpt,
	), s.handleSearch)

	// Comments

	s.addTool(mcp.NewTool("notion_list_comments",
		mcp.WithDescription("List open comments on a page or block"),
		mcp.WithString("block_id", mcp.Required(), mcp.Description("ID of the page or block")),
		cursorOpt, pageSizeOpt, formatOpt,
	), s.handleListComments)

	s.addTool(mcp.NewTool("notion_create_comment",
		mcp.WithDescription("Create a comment on a page or in an existing discussion"),
		mcp.WithObject("parent", mcp.Description("Parent reference, e.g. {\"page_id\": \"...\"}; required unless discussion_id is set")),
		mcp.WithString("discussion_id", mcp.Description("Existing discussion thread to reply to")),
		mcp.WithArray("rich_text", mcp.Required(), mcp.Description("Comment content as a rich text array")),
		formatOpt,
	), s.handleCreateComment)

	s.addTool(mcp.NewTool("notion_get_comment",
		mcp.WithDescription("Retrieve a comment by ID"),
		mcp.WithString("comment_id", mcp.Required(), mcp.Description("ID of the comment")),
		formatOpt,
	), s.handleGetComment)

	// Diagnostics

	s.addTool(mcp.NewTool("notion_test_connection",
		mcp.WithDescription("Verify the Notion API token by looking up the bot user"),
	), s.handleTestConnection)
}
