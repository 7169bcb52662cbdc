package output

import "testing"

func TestFlattenRichText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{
			name: "plain_text preferred",
			input: []any{
				map[string]any{"plain_text": "a"},
				map[string]any{"text": map[string]any{"content": "b"}},
			},
			want: "ab",
		},
		{
			name:  "empty sequence",
			input: []any{},
			want:  "",
		},
		{
			name:  "nil value",
			input: nil,
			want:  "",
		},
		{
			name: "span with neither field contributes nothing",
			input: []any{
				map[string]any{"plain_text": "a"},
				map[string]any{"href": "https://example.com"},
				map[string]any{"plain_text": "c"},
			},
			want: "ac",
		},
		{
			name: "mention plain_text trusted verbatim",
			input: []any{
				map[string]any{
					"type":       "mention",
					"plain_text": "@Ada",
					"mention":    map[string]any{"type": "user"},
				},
				map[string]any{"plain_text": " says hi"},
			},
			want: "@Ada says hi",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := flattenRichText(tt.input); got != tt.want {
				t.Fatalf("flatten mismatch: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageTitle(t *testing.T) {
	t.Parallel()

	withTitle := map[string]any{
		"Status": map[string]any{"type": "select"},
		"Name": map[string]any{
			"type":  "title",
			"title": []any{map[string]any{"plain_text": "Hello"}},
		},
	}
	if got := pageTitle(withTitle); got != "Hello" {
		t.Fatalf("title mismatch: got %q", got)
	}

	noTitle := map[string]any{
		"Status": map[string]any{"type": "select"},
	}
	if got := pageTitle(noTitle); got != "Untitled" {
		t.Fatalf("expected Untitled, got %q", got)
	}

	if got := pageTitle(nil); got != "Untitled" {
		t.Fatalf("expected Untitled for nil properties, got %q", got)
	}
}
