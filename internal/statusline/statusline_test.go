package statusline

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestRender_Playing(t *testing.T) {
	line := Render(State{
		Status:    StatusPlaying,
		Title:     "Song",
		Performer: "Band",
		Position:  83 * time.Second,
		Duration:  4*time.Minute + 56*time.Second,
		Controls:  true,
	}, 80)

	for _, want := range []string{playSymbol, "Song", "Band", "1:23 / 4:56"} {
		if !strings.Contains(line, want) {
			t.Errorf("Render() = %q, missing %q", line, want)
		}
	}
	if strings.Contains(line, noControls) {
		t.Errorf("Render() = %q, unexpected %q", line, noControls)
	}
}

func TestRender_Paused(t *testing.T) {
	line := Render(State{Status: StatusPaused, Title: "Song", Controls: true}, 60)
	if !strings.Contains(line, pauseSymbol) {
		t.Errorf("Render() = %q, missing pause symbol", line)
	}
}

func TestRender_NothingPlaying(t *testing.T) {
	line := Render(State{}, 60)
	if !strings.Contains(line, "nothing playing") {
		t.Errorf("Render() = %q, want nothing playing", line)
	}
}

func TestRender_LockedHidesTrack(t *testing.T) {
	line := Render(State{Status: StatusPlaying, Title: "Secret", Locked: true}, 60)
	if strings.Contains(line, "Secret") {
		t.Errorf("Render() = %q, leaks title while locked", line)
	}
	if !strings.Contains(line, "locked") {
		t.Errorf("Render() = %q, want locked notice", line)
	}
}

func TestRender_WithoutControls(t *testing.T) {
	line := Render(State{Status: StatusPlaying, Title: "Song"}, 100)
	if !strings.Contains(line, noControls) {
		t.Errorf("Render() = %q, want %q", line, noControls)
	}
}

func TestRender_LongTitleTruncated(t *testing.T) {
	title := strings.Repeat("x", 200)
	line := Render(State{Status: StatusPlaying, Title: title, Performer: "Band", Controls: true}, 60)
	if strings.Contains(line, title) {
		t.Error("Render() kept the full title")
	}
	if !strings.Contains(line, "…") {
		t.Errorf("Render() = %q, want ellipsis", line)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		position   time.Duration
		duration   time.Duration
		wantFilled int
	}{
		{"start", 0, time.Minute, 0},
		{"half", 30 * time.Second, time.Minute, 5},
		{"end", time.Minute, time.Minute, 10},
		{"past end", 2 * time.Minute, time.Minute, 10},
		{"unknown duration", 30 * time.Second, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := RenderProgressBar(tt.position, tt.duration, 10)
			if got := strings.Count(bar, "━"); got != tt.wantFilled {
				t.Errorf("filled = %d, want %d", got, tt.wantFilled)
			}
			if got := lipgloss.Width(bar); got != 10 {
				t.Errorf("width = %d, want 10", got)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 5, "trun…"},
		{"x", 1, "x"},
		{"xy", 1, "…"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{83 * time.Second, "1:23"},
		{time.Hour + time.Second, "60:01"},
		{-time.Second, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatDuration(tt.d); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
