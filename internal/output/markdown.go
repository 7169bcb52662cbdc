package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// TermRenderer renders the Markdown projection for a terminal. Only the CLI
// uses this; the MCP server returns the raw Markdown text.
type TermRenderer struct {
	renderer *glamour.TermRenderer
}

func NewTermRenderer() (*TermRenderer, error) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
		if width > 120 {
			width = 120
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}

	return &TermRenderer{renderer: r}, nil
}

func (m *TermRenderer) Render(content string) (string, error) {
	out, err := m.renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (m *TermRenderer) RenderAndPrint(content string) error {
	out, err := m.Render(content)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func RenderMarkdownToTerminal(content string) error {
	r, err := NewTermRenderer()
	if err != nil {
		return err
	}
	return r.RenderAndPrint(content)
}
