package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ecoster/parley/internal/voice"
)

// UI styles
var (
	bannerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1)

	listeningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	transmittingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)

	speakingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Bold(true)

	idleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	replyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E5E7EB"))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	sessionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)
)

// renderBanner prints the startup banner.
func renderBanner(serverURL string, continuous bool) {
	fmt.Println(bannerStyle.Render("parley voice client"))
	fmt.Println(sessionStyle.Render("server: " + serverURL))
	if continuous {
		fmt.Println(sessionStyle.Render("mode: continuous (Ctrl+C to stop)"))
	} else {
		fmt.Println(sessionStyle.Render("mode: single turn"))
	}
	fmt.Println()
}

// renderState prints a state transition line.
func renderState(s voice.State) {
	switch s {
	case voice.StateListening:
		fmt.Println(listeningStyle.Render("● listening"))
	case voice.StateTransmitting:
		fmt.Println(transmittingStyle.Render("● thinking"))
	case voice.StateSpeaking:
		fmt.Println(speakingStyle.Render("● speaking"))
	case voice.StateIdle:
		fmt.Println(idleStyle.Render("● idle"))
	}
}

// renderFragment prints a reply fragment in place, without a newline, so
// the reply appears as it streams.
func renderFragment(fragment string) {
	fmt.Print(replyStyle.Render(fragment))
}

// renderError prints an error line.
func renderError(err error) {
	fmt.Println(errorStyle.Render("✗ " + err.Error()))
}
