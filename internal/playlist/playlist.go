package playlist

import "github.com/llehouerou/nowplaying/internal/document"

// Item is a playable entry: a document in a given context.
// ContextID distinguishes several occurrences of the same document.
type Item struct {
	Document  *document.Document
	ContextID int64
}

// Valid reports whether the item refers to a document.
func (i Item) Valid() bool {
	return i.Document != nil
}

// Playlist holds an ordered collection of items.
type Playlist struct {
	items []Item
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		items: make([]Item, 0),
	}
}

// Add appends items to the playlist.
func (p *Playlist) Add(items ...Item) {
	p.items = append(p.items, items...)
}

// Remove removes the item at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.items) {
		return false
	}
	p.items = append(p.items[:index], p.items[index+1:]...)
	return true
}

// Clear removes all items from the playlist.
func (p *Playlist) Clear() {
	p.items = p.items[:0]
}

// Items returns a copy of all items.
func (p *Playlist) Items() []Item {
	result := make([]Item, len(p.items))
	copy(result, p.items)
	return result
}

// Item returns the item at the given index, or the zero Item if out of bounds.
func (p *Playlist) Item(index int) Item {
	if index < 0 || index >= len(p.items) {
		return Item{}
	}
	return p.items[index]
}

// Len returns the number of items.
func (p *Playlist) Len() int {
	return len(p.items)
}
