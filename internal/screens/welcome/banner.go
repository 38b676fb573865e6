package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathbuddy/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ █████╗ ████████╗██╗  ██╗
 ████╗ ████║██╔══██╗╚══██╔══╝██║  ██║
 ██╔████╔██║███████║   ██║   ███████║
 ██║╚██╔╝██║██╔══██║   ██║   ██╔══██║
 ██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║
 ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝

 ██████╗ ██╗   ██╗██████╗ ██████╗ ██╗   ██╗
 ██╔══██╗██║   ██║██╔══██╗██╔══██╗╚██╗ ██╔╝
 ██████╔╝██║   ██║██║  ██║██║  ██║ ╚████╔╝
 ██╔══██╗██║   ██║██║  ██║██║  ██║  ╚██╔╝
 ██████╔╝╚██████╔╝██████╔╝██████╔╝   ██║
 ╚═════╝  ╚═════╝ ╚═════╝ ╚═════╝    ╚═╝`

const bannerCompact = "M A T H   B U D D Y"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 43

// bannerHeight is the room the block letters need, including the mascot
// and tagline rendered around them.
const bannerHeight = 28

// RenderBanner returns the banner in the primary color, or a one-line
// fallback when the area cannot fit the block letters.
func RenderBanner(width, height int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+2 || height < bannerHeight {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
