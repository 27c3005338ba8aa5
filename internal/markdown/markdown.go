// Package markdown renders markdown for the terminal with glamour.
package markdown

import (
	"strings"
	"sync"

	internalstrings "github.com/amonks/tasks/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown for a terminal of the given width. If glamour
// fails or panics, the normalized source is returned instead.
func Render(width int, input string) string {
	value := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(input))
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if width < 1 {
		width = DefaultWidth
	}

	r, err := rendererFor(width)
	if err != nil {
		return value
	}
	rendered, ok := safeRender(r, value)
	if !ok {
		return value
	}
	rendered = strings.TrimLeft(internalstrings.TrimTrailingNewlines(rendered), "\n")
	if strings.TrimSpace(rendered) == "" {
		return value
	}
	return rendered
}

func safeRender(r renderer, value string) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	rendered, err := r.Render(value)
	if err != nil {
		return "", false
	}
	return rendered, true
}

func rendererFor(width int) (renderer, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if cached, ok := renderers[width]; ok {
		return cached, nil
	}

	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[width] = created
	return created, nil
}
