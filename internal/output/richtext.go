package output

// flattenRichText concatenates a rich text array into plain text, in span
// order: plain_text when present, else text.content, else nothing. Mentions
// and equations are not special-cased; their upstream plain_text is trusted
// verbatim.
func flattenRichText(value any) string {
	spans, ok := value.([]any)
	if !ok {
		return ""
	}

	var out string
	for _, span := range spans {
		m, ok := span.(map[string]any)
		if !ok {
			continue
		}
		if plain, ok := m["plain_text"].(string); ok && plain != "" {
			out += plain
			continue
		}
		if text, ok := m["text"].(map[string]any); ok {
			if content, ok := text["content"].(string); ok {
				out += content
			}
		}
	}
	return out
}

// pageTitle scans a page's property map for the single title-typed property
// and flattens it. Pages without one render as "Untitled".
func pageTitle(properties any) string {
	props, ok := properties.(map[string]any)
	if !ok {
		return "Untitled"
	}
	for _, prop := range props {
		m, ok := prop.(map[string]any)
		if !ok {
			continue
		}
		if t, _ := m["type"].(string); t != "title" {
			continue
		}
		return flattenRichText(m["title"])
	}
	return "Untitled"
}
