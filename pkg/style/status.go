package style

import (
	"github.com/pterm/pterm"
)

// Level groups step outcomes for display.
type Level int

const (
	LevelNone Level = iota
	// LevelChanged means the step changed the machine.
	LevelChanged
	// LevelCurrent means the target state already existed.
	LevelCurrent
	LevelFailed
	LevelSkipped
)

// OutcomeLevel classifies the outcome strings steps record.
func OutcomeLevel(outcome string) Level {
	switch outcome {
	case "success", "created", "enabled", "cleaned":
		return LevelChanged
	case "updated", "running", "unchanged":
		return LevelCurrent
	case "failed":
		return LevelFailed
	case "skipped":
		return LevelSkipped
	default:
		return LevelNone
	}
}

// OutcomeStyle returns the pterm style for an outcome.
func OutcomeStyle(outcome string) *pterm.Style {
	switch OutcomeLevel(outcome) {
	case LevelChanged:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case LevelCurrent:
		return pterm.NewStyle(pterm.FgCyan)
	case LevelFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Indicator is the one-character marker shown before a step line.
func Indicator(outcome string) string {
	switch OutcomeLevel(outcome) {
	case LevelChanged, LevelCurrent:
		return "✓"
	case LevelFailed:
		return "✗"
	case LevelSkipped:
		return "-"
	default:
		return "•"
	}
}
