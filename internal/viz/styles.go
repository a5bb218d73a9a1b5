package viz

import "github.com/charmbracelet/lipgloss"

// Style definitions shared by the CLI summaries and the browser.
var (
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#444466"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	// Shrinkage scale: green barely shrinks, red collapses onto the
	// group mean.
	lambdaLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	lambdaMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	lambdaHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// LambdaStyle returns the style for a shrinkage weight in [0,1].
func LambdaStyle(l float64) lipgloss.Style {
	switch {
	case l < 1.0/3:
		return lambdaLow
	case l < 2.0/3:
		return lambdaMid
	default:
		return lambdaHigh
	}
}
