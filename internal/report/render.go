package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the wrap width used when none is given.
const DefaultWordWrap = 80

// Renderer turns result pages into styled terminal text.
type Renderer struct {
	tr *glamour.TermRenderer
}

// NewRenderer creates a Renderer. style names a glamour style ("dark",
// "light", "notty", ...); empty picks one from the terminal background.
func NewRenderer(style string, width int) (*Renderer, error) {
	if width <= 0 {
		width = DefaultWordWrap
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}

	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &Renderer{tr: tr}, nil
}

// Render renders the page.
func (r *Renderer) Render(p Page, submitted bool) (string, error) {
	out, err := r.tr.Render(p.Markdown(submitted))
	if err != nil {
		return "", fmt.Errorf("render result page: %w", err)
	}
	return out, nil
}
