package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/glp360/riskscore/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗     ██████╗       ██╗    ██████╗  ██████╗  ██████╗
 ██╔════╝ ██║     ██╔══██╗     ███║    ╚════██╗██╔════╝ ██╔═████╗
 ██║  ███╗██║     ██████╔╝████╗╚██║     █████╔╝███████╗ ██║██╔██║
 ██║   ██║██║     ██╔═══╝ ╚═══╝ ██║     ╚═══██╗██╔═══██╗████╔╝██║
 ╚██████╔╝███████╗██║           ██║    ██████╔╝╚██████╔╝╚██████╔╝
  ╚═════╝ ╚══════╝╚═╝           ╚═╝    ╚═════╝  ╚═════╝  ╚═════╝`

const bannerCompact = "G L P - 1   3 6 0"

// RenderBanner returns the GLP-1 360 banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 68 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 68 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
