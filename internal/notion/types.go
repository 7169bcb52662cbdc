package notion

import "encoding/json"

// Notion domain types. Timestamps are kept as the ISO-8601 strings the API
// returns; nothing in this package parses them into time.Time.

type User struct {
	ID        string  `json:"id"`
	Object    string  `json:"object,omitempty"`
	Type      string  `json:"type,omitempty"`
	Name      string  `json:"name,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Person    *Person `json:"person,omitempty"`
	Bot       *Bot    `json:"bot,omitempty"`
}

type UserRef struct {
	ID     string `json:"id"`
	Object string `json:"object,omitempty"`
}

type Person struct {
	Email string `json:"email,omitempty"`
}

type Bot struct {
	Owner         *BotOwner `json:"owner,omitempty"`
	WorkspaceName string    `json:"workspace_name,omitempty"`
}

type BotOwner struct {
	Type      string `json:"type"`
	Workspace bool   `json:"workspace,omitempty"`
	User      *User  `json:"user,omitempty"`
}

type Page struct {
	ID             string                   `json:"id"`
	Object         string                   `json:"object,omitempty"`
	CreatedTime    string                   `json:"created_time,omitempty"`
	LastEditedTime string                   `json:"last_edited_time,omitempty"`
	CreatedBy      *UserRef                 `json:"created_by,omitempty"`
	LastEditedBy   *UserRef                 `json:"last_edited_by,omitempty"`
	Archived       bool                     `json:"archived,omitempty"`
	InTrash        bool                     `json:"in_trash,omitempty"`
	Icon           *Icon                    `json:"icon,omitempty"`
	Cover          *Cover                   `json:"cover,omitempty"`
	Properties     map[string]PropertyValue `json:"properties,omitempty"`
	Parent         *Parent                  `json:"parent,omitempty"`
	URL            string                   `json:"url,omitempty"`
	PublicURL      string                   `json:"public_url,omitempty"`
}

type Database struct {
	ID             string         `json:"id"`
	Object         string         `json:"object,omitempty"`
	CreatedTime    string         `json:"created_time,omitempty"`
	LastEditedTime string         `json:"last_edited_time,omitempty"`
	CreatedBy      *UserRef       `json:"created_by,omitempty"`
	LastEditedBy   *UserRef       `json:"last_edited_by,omitempty"`
	Title          []RichText     `json:"title,omitempty"`
	Description    []RichText     `json:"description,omitempty"`
	Icon           *Icon          `json:"icon,omitempty"`
	Cover          *Cover         `json:"cover,omitempty"`
	Properties     map[string]any `json:"properties,omitempty"`
	Parent         *Parent        `json:"parent,omitempty"`
	URL            string         `json:"url,omitempty"`
	Archived       bool           `json:"archived,omitempty"`
	IsInline       bool           `json:"is_inline,omitempty"`
	PublicURL      string         `json:"public_url,omitempty"`
}

// Block keeps its type-specific payload (paragraph, heading_1, ...) opaque in
// Content so unknown block kinds survive a decode/encode round trip.
type Block struct {
	ID             string         `json:"id"`
	Object         string         `json:"object,omitempty"`
	Type           string         `json:"type,omitempty"`
	CreatedTime    string         `json:"created_time,omitempty"`
	LastEditedTime string         `json:"last_edited_time,omitempty"`
	CreatedBy      *UserRef       `json:"created_by,omitempty"`
	LastEditedBy   *UserRef       `json:"last_edited_by,omitempty"`
	HasChildren    bool           `json:"has_children,omitempty"`
	Archived       bool           `json:"archived,omitempty"`
	InTrash        bool           `json:"in_trash,omitempty"`
	Parent         *Parent        `json:"parent,omitempty"`
	Content        map[string]any `json:"-"`
}

type blockAlias Block

func (b *Block) UnmarshalJSON(data []byte) error {
	var alias blockAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*b = Block(alias)

	if b.Type == "" {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields[b.Type]; ok {
		var content map[string]any
		if err := json.Unmarshal(raw, &content); err == nil {
			b.Content = content
		}
	}
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(blockAlias(b))
	if err != nil {
		return nil, err
	}
	if b.Type == "" || b.Content == nil {
		return data, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	fields[b.Type] = b.Content
	return json.Marshal(fields)
}

type Comment struct {
	ID             string     `json:"id"`
	Object         string     `json:"object,omitempty"`
	Parent         *Parent    `json:"parent,omitempty"`
	DiscussionID   string     `json:"discussion_id,omitempty"`
	CreatedTime    string     `json:"created_time,omitempty"`
	LastEditedTime string     `json:"last_edited_time,omitempty"`
	CreatedBy      *UserRef   `json:"created_by,omitempty"`
	RichText       []RichText `json:"rich_text,omitempty"`
}

// Parent is a tagged union: exactly one of PageID, DatabaseID, BlockID or
// Workspace is populated, matching Type.
type Parent struct {
	Type       string `json:"type"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
	BlockID    string `json:"block_id,omitempty"`
	Workspace  bool   `json:"workspace,omitempty"`
}

func PageParent(pageID string) *Parent {
	return &Parent{Type: "page_id", PageID: pageID}
}

func DatabaseParent(databaseID string) *Parent {
	return &Parent{Type: "database_id", DatabaseID: databaseID}
}

func BlockParent(blockID string) *Parent {
	return &Parent{Type: "block_id", BlockID: blockID}
}

func WorkspaceParent() *Parent {
	return &Parent{Type: "workspace", Workspace: true}
}

type RichText struct {
	Type        string       `json:"type,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
	Href        string       `json:"href,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	Text        *TextContent `json:"text,omitempty"`
	Mention     *Mention     `json:"mention,omitempty"`
	Equation    *Equation    `json:"equation,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

type Link struct {
	URL string `json:"url"`
}

type Mention struct {
	Type     string         `json:"type,omitempty"`
	User     *UserRef       `json:"user,omitempty"`
	Page     *IDRef         `json:"page,omitempty"`
	Database *IDRef         `json:"database,omitempty"`
	Date     map[string]any `json:"date,omitempty"`
}

type IDRef struct {
	ID string `json:"id"`
}

type Equation struct {
	Expression string `json:"expression"`
}

type Annotations struct {
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Code          bool   `json:"code,omitempty"`
	Color         string `json:"color,omitempty"`
}

type Icon struct {
	Type     string `json:"type"`
	Emoji    string `json:"emoji,omitempty"`
	External *File  `json:"external,omitempty"`
	File     *File  `json:"file,omitempty"`
}

type Cover struct {
	Type     string `json:"type"`
	External *File  `json:"external,omitempty"`
	File     *File  `json:"file,omitempty"`
}

type File struct {
	URL        string `json:"url"`
	ExpiryTime string `json:"expiry_time,omitempty"`
}

type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

type DateValue struct {
	Start    string `json:"start"`
	End      string `json:"end,omitempty"`
	TimeZone string `json:"time_zone,omitempty"`
}

type Relation struct {
	ID string `json:"id"`
}

type UniqueID struct {
	Prefix string  `json:"prefix,omitempty"`
	Number float64 `json:"number"`
}

// List is the normalized paging envelope for every paginated endpoint.
// NextCursor is empty when there is no further page; an upstream JSON null
// cursor decodes to the empty string, so "null" and "absent" collapse into
// one representation. HasMore and NextCursor are copied independently from
// the upstream body and never derived from each other.
type List[T any] struct {
	Object     string `json:"object,omitempty"`
	Results    []T    `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
	Type       string `json:"type,omitempty"`
}
