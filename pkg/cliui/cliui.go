// Package cliui provides reusable terminal UI helpers (spinners, step indicators,
// markdown rendering) for duet CLI commands.
package cliui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the CLI styles bound to one output writer. Color support is
// detected from that writer, so text sent to a buffer or pipe stays plain
// even when the process's stdout is a terminal.
type Styles struct {
	Success lipgloss.Style
	Fail    lipgloss.Style
	Step    lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Dim     lipgloss.Style
	Name    lipgloss.Style
	Error   lipgloss.Style
	Spinner lipgloss.Style
}

// NewStyles returns Styles rendered for w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Success: r.NewStyle().Foreground(lipgloss.Color("82")),
		Fail:    r.NewStyle().Foreground(lipgloss.Color("196")),
		Step:    r.NewStyle().Foreground(lipgloss.Color("245")),
		Key:     r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Value:   r.NewStyle().Foreground(lipgloss.Color("252")),
		Dim:     r.NewStyle().Foreground(lipgloss.Color("245")),
		Name:    r.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Spinner: r.NewStyle().Foreground(lipgloss.Color("82")),
	}
}

// SuccessMark renders a ✓.
func (s *Styles) SuccessMark() string {
	return s.Success.Render("✓")
}

// FailMark renders a ✗.
func (s *Styles) FailMark() string {
	return s.Fail.Render("✗")
}

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func (s *Styles) Mark(err error) string {
	if err != nil {
		return s.FailMark()
	}
	return s.SuccessMark()
}

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Step prints an animated spinner while fn runs, then replaces it with
// a ✓ or ✗ checkmark and elapsed time.
func Step(w io.Writer, msg string, fn func() error) error {
	styles := NewStyles(w)
	done := make(chan struct{})
	stopped := make(chan struct{})
	var mu sync.Mutex

	go func() {
		defer close(stopped)
		frame := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			mu.Lock()
			fmt.Fprintf(w, "\r  %s %s",
				styles.Spinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
				msg,
			)
			mu.Unlock()

			select {
			case <-done:
				return
			case <-ticker.C:
				frame++
			}
		}
	}()

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	close(done)
	<-stopped

	// Clear the spinner line and print final result
	mu.Lock()
	fmt.Fprintf(w, "\r  %s %s %s\n",
		styles.Mark(err),
		msg,
		styles.Step.Render(fmt.Sprintf("(%s)", FormatDuration(elapsed))),
	)
	mu.Unlock()

	return err
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Rule returns a horizontal rule of width repetitions of ch.
func Rule(ch string, width int) string {
	return strings.Repeat(ch, width)
}

// RenderMarkdown renders markdown content for terminal display using glamour.
// On failure the raw content is returned alongside the error.
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content, err
	}

	return strings.TrimRight(rendered, "\n"), nil
}
