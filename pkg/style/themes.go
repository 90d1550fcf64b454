package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors: Light is used on light terminal backgrounds.
var (
	// Arch blue for titles and paths.
	HeadingColor = lipgloss.AdaptiveColor{Light: "#0F6A99", Dark: "#1793D1"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#136C8C", Dark: "#5FC4E8"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#5C6370", Dark: "#9DA5B4"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#B36B00", Dark: "#F0B450"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF7A6B"}
)
