// Package document models the audio files known to a session: their
// display names, embedded cover art and lazily loaded thumbnails.
package document

import (
	"image"
	"time"

	"github.com/google/uuid"
)

// Info is the metadata a document is created from.
type Info struct {
	Path      string
	Title     string
	Performer string
	Duration  time.Duration
	HasCover  bool
}

// Document is an audio file registered with a Session.
type Document struct {
	id      uuid.UUID
	info    Info
	name    SongName
	session *Session
}

// IDForPath returns the stable document ID of a file path.
func IDForPath(path string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path))
}

func (d *Document) ID() uuid.UUID { return d.id }

func (d *Document) Path() string { return d.info.Path }

// Duration returns the track length, zero until known. Tags rarely carry
// it, so the engine records it through SetDuration on first play.
func (d *Document) Duration() time.Duration {
	d.session.mu.Lock()
	defer d.session.mu.Unlock()
	return d.info.Duration
}

// SetDuration records the decoded length. Non-positive values are ignored.
func (d *Document) SetDuration(length time.Duration) {
	if length <= 0 {
		return
	}
	d.session.mu.Lock()
	d.info.Duration = length
	d.session.mu.Unlock()
}

// IsSongWithCover reports whether the file carries embedded cover art.
func (d *Document) IsSongWithCover() bool { return d.info.HasCover }

// SongName returns the formatted display name.
func (d *Document) SongName() SongName { return d.name }

// Session returns the session owning the document.
func (d *Document) Session() *Session { return d.session }

// CreateMediaView returns a new handle for this document's thumbnail.
func (d *Document) CreateMediaView() *MediaView {
	return &MediaView{doc: d}
}

// MediaView is a handle to a document's thumbnail. The thumbnail is
// loaded asynchronously after ThumbnailWanted and announced through
// Session.DownloaderTaskFinished.
type MediaView struct {
	doc *Document
}

// Document returns the viewed document.
func (v *MediaView) Document() *Document { return v.doc }

// ThumbnailWanted requests the thumbnail on behalf of contextID.
// Only one load per document runs at a time.
func (v *MediaView) ThumbnailWanted(contextID int64) {
	v.doc.session.requestThumbnail(v.doc, contextID)
}

// Thumbnail returns the loaded thumbnail, or nil while unresolved.
func (v *MediaView) Thumbnail() image.Image {
	return v.doc.session.thumbnail(v.doc.id)
}
