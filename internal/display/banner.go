package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerArt string

const bannerTagline = "step-by-step cooking timers"

// RenderBanner returns the stepcook art and tagline centred for the
// terminal stdout is attached to.
func RenderBanner() string {
	return renderBanner(stdoutColumns())
}

// renderBanner centres the block as a whole so the art keeps its shape.
// Narrower widths leave it flush left.
func renderBanner(width int) string {
	art := strings.TrimRight(bannerArt, "\n")
	if art == "" {
		return ""
	}
	block := lipgloss.JoinVertical(lipgloss.Center,
		BannerStyle.Render(art),
		metaStyle.Render(bannerTagline),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block) + "\n"
}

func stdoutColumns() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
