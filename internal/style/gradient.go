package style

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyBoldForegroundGrad renders a string bold with a horizontal
// foreground gradient between the two colors. Blending is done in Hcl
// to stay in gamut.
func ApplyBoldForegroundGrad(input string, from, to color.Color) string {
	if input == "" {
		return ""
	}

	// Split into grapheme clusters for proper unicode handling.
	var clusters []string
	gr := uniseg.NewGraphemes(input)
	for gr.Next() {
		clusters = append(clusters, string(gr.Runes()))
	}

	c1, _ := colorful.MakeColor(from)
	if len(clusters) == 1 {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c1.Hex())).Render(input)
	}
	c2, _ := colorful.MakeColor(to)

	var o strings.Builder
	for i, cluster := range clusters {
		t := float64(i) / float64(len(clusters)-1)
		c := c1.BlendHcl(c2, t)
		o.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex())).Render(cluster))
	}
	return o.String()
}
