// Package statusline renders the one-line console view of the player.
package statusline

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Status is the coarse playback status shown on the line.
type Status int

const (
	StatusStopped Status = iota
	StatusPlaying
	StatusPaused
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	stopSymbol  = "■"
	lockSymbol  = "🔒"

	separator   = "   "
	minBarWidth = 5
)

// State holds everything needed to render the status line.
type State struct {
	Status    Status
	Title     string
	Performer string
	Position  time.Duration
	Duration  time.Duration
	Locked    bool
	// Controls reports whether the desktop media controls are attached.
	Controls bool
}

func (s Status) symbol() string {
	switch s {
	case StatusPlaying:
		return playSymbol
	case StatusPaused:
		return pauseSymbol
	default:
		return stopSymbol
	}
}

// Render returns the status line for the given width.
// A locked state hides the track.
func Render(s State, width int) string {
	if s.Locked {
		return lockedStyle().Render(lockSymbol+" locked") +
			performerStyle().Render("  type: unlock <code>")
	}

	status := statusStyle(s.Status).Render(s.Status.symbol())
	if s.Status == StatusStopped && s.Title == "" {
		return status + "  " + performerStyle().Render("nothing playing")
	}

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}
	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))

	fixed := lipgloss.Width(status) + 2 + lipgloss.Width(separator)*2 + lipgloss.Width(timeStr)
	if !s.Controls {
		fixed += lipgloss.Width(separator) + lipgloss.Width(noControls)
	}
	available := max(width-fixed-minBarWidth, 10)

	var styledTitle, styledPerformer string
	used := 0
	titleWidth := lipgloss.Width(title)
	performerWidth := lipgloss.Width(s.Performer)
	switch {
	case s.Performer != "" && titleWidth+lipgloss.Width(separator)+performerWidth <= available:
		styledTitle = titleStyle().Render(title)
		styledPerformer = separator + performerStyle().Render(s.Performer)
		used = titleWidth + lipgloss.Width(separator) + performerWidth
	case titleWidth <= available:
		styledTitle = titleStyle().Render(title)
		used = titleWidth
	default:
		styledTitle = titleStyle().Render(truncate(title, available))
		used = available
	}

	bar := RenderProgressBar(s.Position, s.Duration, max(width-fixed-used, minBarWidth))

	line := status + "  " + styledTitle + styledPerformer + separator + bar + separator + timeStr
	if !s.Controls {
		line += separator + errorStyle().Render(noControls)
	}
	return line
}

const noControls = "no media controls"

// RenderProgressBar renders a line-style progress bar of barWidth cells.
func RenderProgressBar(position, duration time.Duration, barWidth int) string {
	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	ratio = min(max(ratio, 0), 1)
	filled := min(int(float64(barWidth)*ratio), barWidth)

	return progressBarFilled().Render(strings.Repeat("━", filled)) +
		progressBarEmpty().Render(strings.Repeat("─", barWidth-filled))
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func formatDuration(d time.Duration) string {
	d = max(d, 0)
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
