package cmd

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

// severityEmoji maps a finding severity onto its report prefix.
func severityEmoji(severity string) string {
	switch severity {
	case "good":
		return "✅"
	case "bad":
		return "❌"
	case "info":
		return "ℹ️"
	default:
		return "•"
	}
}

// formatDelta renders a score delta with an explicit sign and color.
func formatDelta(delta int) string {
	switch {
	case delta > 0:
		return colorSuccess(fmt.Sprintf("+%d", delta))
	case delta < 0:
		return colorError(fmt.Sprintf("%d", delta))
	default:
		return colorWarn("0")
	}
}

// formatScore colors a total score by its sign.
func formatScore(score int) string {
	switch {
	case score > 0:
		return colorSuccess(fmt.Sprintf("%d", score))
	case score < 0:
		return colorError(fmt.Sprintf("%d", score))
	default:
		return colorWarn("0")
	}
}
