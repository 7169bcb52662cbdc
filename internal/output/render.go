package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/lox/notion-mcp/internal/notion"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected json or markdown)", raw)
	}
}

// Result is the caller-visible outcome of rendering: a text payload and an
// error flag. Tool handlers forward it unchanged.
type Result struct {
	Text    string
	IsError bool
}

// Render projects data into the requested format. JSON output round-trips;
// Markdown is a lossy human projection. Render never mutates data and
// performs no I/O.
func Render(data any, format Format, label string) Result {
	if format == FormatJSON {
		return Result{Text: toJSON(data)}
	}
	return Result{Text: renderMarkdown(data, label)}
}

// RenderError serializes a failure. The output is always JSON regardless of
// the requested format, and always flagged as an error. Retryable classified
// errors get an explicit "(retryable)" marker so callers can grep for it.
func RenderError(err error) Result {
	message := err.Error()
	var details any = message
	if apiErr, ok := notion.AsError(err); ok {
		if apiErr.Retryable {
			message += " (retryable)"
		}
		details = apiErr
	}

	payload := map[string]any{
		"error":   message,
		"details": details,
	}
	return Result{Text: toJSON(payload), IsError: true}
}

func toJSON(data any) string {
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(text)
}

// renderMarkdown inspects the decoded shape of data: paging envelopes get a
// heading plus an entity table, bare slices a generic table, single objects
// a field listing, anything else is stringified.
func renderMarkdown(data any, label string) string {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return fmt.Sprintf("%v", data)
	}

	switch v := decoded.(type) {
	case map[string]any:
		if isListEnvelope(v) {
			return renderList(v, label)
		}
		return renderObject(v, label)
	case []any:
		return genericTable(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func isListEnvelope(m map[string]any) bool {
	_, hasResults := m["results"]
	_, hasMore := m["has_more"]
	return hasResults && hasMore
}

func renderList(m map[string]any, label string) string {
	results, _ := m["results"].([]any)

	var b strings.Builder
	fmt.Fprintf(&b, "## %s (%d)\n\n", capitalize(label), len(results))

	if len(results) == 0 {
		b.WriteString("No items found.\n")
		return b.String()
	}

	builder, ok := tableBuilders[strings.ToLower(label)]
	if !ok {
		builder = genericTable
	}
	b.WriteString(builder(results))

	if hasMore, _ := m["has_more"].(bool); hasMore {
		if cursor, _ := m["next_cursor"].(string); cursor != "" {
			fmt.Fprintf(&b, "\nMore results available. Next cursor: `%s`\n", cursor)
		} else {
			b.WriteString("\nMore results available.\n")
		}
	}
	return b.String()
}

func renderObject(m map[string]any, label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", capitalize(singularize(label)))

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := m[k]
		if v == nil {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			fmt.Fprintf(&b, "**%s**:\n\n```json\n%s\n```\n", k, toJSON(v))
		default:
			fmt.Fprintf(&b, "**%s**: %s\n", k, cellString(v))
		}
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func singularize(s string) string {
	if len(s) > 1 {
		return strings.TrimSuffix(s, "s")
	}
	return s
}
