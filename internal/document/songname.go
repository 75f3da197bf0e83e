package document

import (
	"path/filepath"
	"strings"
)

const (
	unknownTrack  = "Unknown Track"
	unknownArtist = "Unknown Artist"
)

// SongName is the display name of a song.
type SongName struct {
	Title     string
	Performer string
}

// FormatSongName builds the display name from tag values, falling back to
// the file name when no tags are present. A file named
// "Performer - Title.mp3" yields both parts.
func FormatSongName(filename, title, performer string) SongName {
	title = strings.TrimSpace(title)
	performer = strings.TrimSpace(performer)

	if title == "" && performer == "" {
		return songNameFromFile(filename)
	}
	if title == "" {
		title = unknownTrack
	}
	if performer == "" {
		performer = unknownArtist
	}
	return SongName{Title: title, Performer: performer}
}

func songNameFromFile(filename string) SongName {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if performer, title, ok := strings.Cut(stem, " - "); ok {
		performer = strings.TrimSpace(performer)
		title = strings.TrimSpace(title)
		if title != "" && performer != "" {
			return SongName{Title: title, Performer: performer}
		}
	}

	stem = strings.TrimSpace(stem)
	if stem == "" {
		stem = unknownTrack
	}
	return SongName{Title: stem}
}

// ComposedName returns the title and performer shown to the user.
func (n SongName) ComposedName() (title, performer string) {
	return n.Title, n.Performer
}
