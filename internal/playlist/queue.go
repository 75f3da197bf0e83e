package playlist

// PlayingQueue wraps a Playlist with playback position.
type PlayingQueue struct {
	playlist     *Playlist
	currentIndex int // -1 if nothing selected
}

// NewQueue creates a new empty playing queue.
func NewQueue() *PlayingQueue {
	return &PlayingQueue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// Current returns the current item, or the zero Item if none.
func (q *PlayingQueue) Current() Item {
	return q.playlist.Item(q.currentIndex)
}

// CurrentIndex returns the index of the current item (-1 if none).
func (q *PlayingQueue) CurrentIndex() int {
	return q.currentIndex
}

// Next advances to the next item and returns it.
// Returns the zero Item if there is no next item.
func (q *PlayingQueue) Next() Item {
	if !q.HasNext() {
		return Item{}
	}
	q.currentIndex++
	return q.Current()
}

// HasNext returns true if there's an item after the current one.
func (q *PlayingQueue) HasNext() bool {
	return q.currentIndex < q.playlist.Len()-1
}

// Previous moves to the item before the current one and returns it.
// Returns the zero Item if there is none.
func (q *PlayingQueue) Previous() Item {
	if !q.HasPrevious() {
		return Item{}
	}
	q.currentIndex--
	return q.Current()
}

// HasPrevious returns true if there's an item before the current one.
func (q *PlayingQueue) HasPrevious() bool {
	return q.currentIndex > 0 && q.currentIndex < q.playlist.Len()
}

// JumpTo sets the current index to the specified position.
// Returns the item at that position, or the zero Item if invalid.
func (q *PlayingQueue) JumpTo(index int) Item {
	if index < 0 || index >= q.playlist.Len() {
		return Item{}
	}
	q.currentIndex = index
	return q.Current()
}

// Add appends items to the queue without changing the current index.
func (q *PlayingQueue) Add(items ...Item) {
	q.playlist.Add(items...)
}

// Replace clears the queue, adds items, and sets index to 0.
// Returns the first item.
func (q *PlayingQueue) Replace(items ...Item) Item {
	q.playlist.Clear()
	q.currentIndex = -1
	if len(items) == 0 {
		return Item{}
	}
	q.playlist.Add(items...)
	q.currentIndex = 0
	return q.Current()
}

// Clear removes all items and resets the position.
func (q *PlayingQueue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
}

// Items returns all items in the queue.
func (q *PlayingQueue) Items() []Item {
	return q.playlist.Items()
}

// Len returns the number of items in the queue.
func (q *PlayingQueue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no items.
func (q *PlayingQueue) IsEmpty() bool {
	return q.playlist.Len() == 0
}
