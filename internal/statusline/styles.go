package statusline

import "github.com/charmbracelet/lipgloss"

// Palette shared by every status line element.
var (
	colorPrimary = lipgloss.Color("#a78bfa") // playing
	colorFgBase  = lipgloss.Color("#c0c0c0")
	colorFgMuted = lipgloss.Color("#808080")
	colorSubtle  = lipgloss.Color("#585858")
	colorWarning = lipgloss.Color("#f1a208") // locked
	colorError   = lipgloss.Color("#ff5555")
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorFgBase).Bold(true)
}

func performerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorFgMuted)
}

func statusStyle(s Status) lipgloss.Style {
	switch s {
	case StatusPlaying:
		return lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	case StatusPaused:
		return lipgloss.NewStyle().Foreground(colorFgMuted)
	default:
		return lipgloss.NewStyle().Foreground(colorSubtle)
	}
}

func progressBarFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorPrimary)
}

func progressBarEmpty() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSubtle)
}

func lockedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}
