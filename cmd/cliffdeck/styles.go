package main

import "github.com/charmbracelet/lipgloss"

// Layout constants
const (
	cellW  = 7 // width of each step column in characters
	labelW = 6 // width of the qubit label area
)

// Lipgloss styles used across the TUI.
var (
	circuitStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1)

	editorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#bb9af7")).
			Padding(1)

	stabilizerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9ece6a")).
			Padding(0, 1)

	recordStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#e0af68")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#565f89")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	cursorBoxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9e64")).
			Bold(true)

	targetSelectStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bb9af7")).
				Bold(true)

	gateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")).
			Bold(true)

	signPlusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))

	signMinusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))

	randomTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e"))

	menuSelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9e64")).
			Bold(true)

	menuDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)
