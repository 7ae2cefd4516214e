package testutils

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ForceStdoutColor makes lipgloss's default renderer emit TrueColor escapes,
// as it would when the process's stdout is a terminal. It returns a func that
// restores the previous profile, suitable for DeferCleanup.
func ForceStdoutColor() func() {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	return func() {
		lipgloss.SetColorProfile(prev)
	}
}
