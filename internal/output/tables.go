package output

import (
	"fmt"
	"sort"
	"strings"
)

const (
	genericCellLimit = 30
	commentTextLimit = 50
	genericColumnCap = 5
)

// tableBuilders maps an entity label to its Markdown table builder. Adding a
// new entity kind is a one-line addition here.
var tableBuilders = map[string]func([]any) string{
	"users":     usersTable,
	"pages":     pagesTable,
	"databases": databasesTable,
	"blocks":    blocksTable,
	"comments":  commentsTable,
}

func usersTable(items []any) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		email := "-"
		if person, ok := m["person"].(map[string]any); ok {
			if e, ok := person["email"].(string); ok && e != "" {
				email = e
			}
		}
		rows = append(rows, []string{
			str(m, "id"),
			orDash(str(m, "name")),
			orDash(str(m, "type")),
			email,
		})
	}
	return mdTable([]string{"ID", "Name", "Type", "Email"}, rows)
}

func pagesTable(items []any) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		rows = append(rows, []string{
			str(m, "id"),
			pageTitle(m["properties"]),
			datePart(str(m, "created_time")),
			datePart(str(m, "last_edited_time")),
		})
	}
	return mdTable([]string{"ID", "Title", "Created", "Last Edited"}, rows)
}

func databasesTable(items []any) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		propCount := 0
		if props, ok := m["properties"].(map[string]any); ok {
			propCount = len(props)
		}
		rows = append(rows, []string{
			str(m, "id"),
			flattenRichText(m["title"]),
			datePart(str(m, "created_time")),
			fmt.Sprintf("%d", propCount),
		})
	}
	return mdTable([]string{"ID", "Title", "Created", "Properties"}, rows)
}

func blocksTable(items []any) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		hasChildren := "No"
		if b, ok := m["has_children"].(bool); ok && b {
			hasChildren = "Yes"
		}
		rows = append(rows, []string{
			str(m, "id"),
			str(m, "type"),
			hasChildren,
		})
	}
	return mdTable([]string{"ID", "Type", "Has Children"}, rows)
}

func commentsTable(items []any) string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		// The ellipsis is appended unconditionally, matching long-standing
		// rendering behavior even for short comments.
		text := truncate(flattenRichText(m["rich_text"]), commentTextLimit) + "..."
		rows = append(rows, []string{
			str(m, "id"),
			text,
			datePart(str(m, "created_time")),
		})
	}
	return mdTable([]string{"ID", "Comment", "Created"}, rows)
}

// genericTable derives headers from the first item's keys, capped at five
// columns, and is the fallback for labels without a dedicated builder.
func genericTable(items []any) string {
	if len(items) == 0 {
		return "No items found.\n"
	}

	first, ok := items[0].(map[string]any)
	if !ok {
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, []string{truncate(cellString(item), genericCellLimit)})
		}
		return mdTable([]string{"Value"}, rows)
	}

	keys := make([]string, 0, len(first))
	for k := range first {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > genericColumnCap {
		keys = keys[:genericColumnCap]
	}

	headers := make([]string, len(keys))
	for i, k := range keys {
		headers[i] = capitalize(k)
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		row := make([]string, len(keys))
		for i, k := range keys {
			row[i] = truncate(cellString(m[k]), genericCellLimit)
		}
		rows = append(rows, row)
	}
	return mdTable(headers, rows)
}

func mdTable(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	separators := make([]string, len(headers))
	for i := range separators {
		separators[i] = "---"
	}
	b.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = escapeCell(cell)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}

func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// datePart slices the date portion off an ISO-8601 timestamp textually; the
// string is never parsed as a time.
func datePart(s string) string {
	if s == "" {
		return "-"
	}
	date, _, _ := strings.Cut(s, "T")
	return date
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
