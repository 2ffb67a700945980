// Package layout draws the frame around every questionnaire screen: a
// header with the brand and question position, the screen body and a
// footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/glp360/riskscore/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	HeaderHeight = 3
	FooterHeight = 3

	// Below this width the progress percentage and long hints are dropped.
	CompactWidthThreshold = 100
)

// Brand is shown at the left of the header.
const Brand = "GLP-1 360"

const hintGap = "   "

// KeyHint is one "key action" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
		" " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

// IsCompactWidth reports whether the terminal is too narrow for the full
// progress bar and hint row.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsTooSmall reports whether a question and its options cannot fit.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is the height left for a screen between header and footer.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The risk score test needs a larger window.\n\nAt least %d x %d, currently %d x %d.",
			MinWidth, MinHeight, width, height,
		))
}

// bar is the bordered strip used for both header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader shows "GLP-1 360 · <title>" on the left and status, such as
// "Question 3 of 13", on the right. The title is dropped when it does not fit.
func RenderHeader(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" " + Brand)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status + " ")

	inner := max(width-4, 0)
	left := brand
	if title != "" {
		withTitle := brand + lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · "+title)
		if lipgloss.Width(withTitle)+lipgloss.Width(right)+1 <= inner {
			left = withTitle
		}
	}

	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return bar(left+strings.Repeat(" ", gap)+right, width)
}

// RenderFooter lists key hints in order. Hints that would overflow the bar
// are left off; the first one is always shown.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(width-6, 0)

	var b strings.Builder
	for i, h := range hints {
		part := h.render()
		if i > 0 {
			if lipgloss.Width(b.String())+len(hintGap)+lipgloss.Width(part) > inner {
				break
			}
			b.WriteString(hintGap)
		}
		b.WriteString(part)
	}
	return bar("  "+b.String(), width)
}

// RenderFrame stacks header, content and footer, padding the content so
// the footer stays at the bottom of the terminal.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
