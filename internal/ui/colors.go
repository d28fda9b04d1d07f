// Package ui holds the ANSI styling used by the CLI help and command summaries.
package ui

import "os"

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// Plain disables styling in the helpers below. It starts true when
// NO_COLOR is set.
var Plain = os.Getenv("NO_COLOR") != ""

func paint(style, s string) string {
	if Plain {
		return s
	}
	return style + s + ColorReset
}

// Success styles a completed-step message
func Success(s string) string {
	return paint(ColorGreen, s)
}

// Info styles a neutral notice
func Info(s string) string {
	return paint(ColorDim+ColorYellow, s)
}

// Warn styles a partial-failure notice
func Warn(s string) string {
	return paint(ColorYellow, s)
}
