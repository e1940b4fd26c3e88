// Package ui provides the terminal rendering for pitsweeper: a lipgloss
// styled view of the maze overlaid with the agent's current knowledge,
// and the bubbletea page driving the live watch mode.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic palette for knowledge states.
var (
	ColorSafe     = lipgloss.Color("#8BC34A") // green: proven safe
	ColorPit      = lipgloss.Color("#e53935") // red: proven pit
	ColorSuspect  = lipgloss.Color("#FFC107") // yellow: possible pit
	ColorNeutral  = lipgloss.Color("#2196F3") // blue: player and goal
	ColorMuted    = lipgloss.Color("#5c6773") // walls and fog
	ColorFogFaint = lipgloss.Color("#3a4149")
)

var (
	StylePlayer  = lipgloss.NewStyle().Foreground(ColorNeutral).Bold(true)
	StyleGoal    = lipgloss.NewStyle().Foreground(ColorNeutral).Bold(true)
	StyleWall    = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleSafe    = lipgloss.NewStyle().Foreground(ColorSafe)
	StylePit     = lipgloss.NewStyle().Foreground(ColorPit).Bold(true)
	StyleSuspect = lipgloss.NewStyle().Foreground(ColorSuspect)
	StyleFog     = lipgloss.NewStyle().Foreground(ColorFogFaint)

	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorSafe)
	StyleHelp  = lipgloss.NewStyle().Foreground(ColorMuted)
	StylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)
)
