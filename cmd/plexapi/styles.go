package main

import "github.com/charmbracelet/lipgloss"

var (
	plexOrange = lipgloss.Color("#E5A00D")
	dimGray    = lipgloss.Color("#6B7280")
	green      = lipgloss.Color("#10B981")
	red        = lipgloss.Color("#EF4444")
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(plexOrange).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimGray)

	successStyle = lipgloss.NewStyle().
			Foreground(green)

	errorStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)
)

// Watch status markers
const (
	unplayedChar   = "●"
	inProgressChar = "◐"
	playedChar     = "✓"
)
