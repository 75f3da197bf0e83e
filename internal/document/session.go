package document

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/dhowden/tag"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/nowplaying/internal/rx"
)

// ErrSessionClosed is returned when opening documents on a closed session.
var ErrSessionClosed = errors.New("session closed")

// CoverSource loads the cover image of an audio file.
// A nil image with a nil error means the file has no cover.
type CoverSource interface {
	Cover(path string) (image.Image, error)
}

// Session owns documents and the thumbnail downloader.
type Session struct {
	covers CoverSource
	post   func(func())
	run    func(func())
	log    *logrus.Entry

	mu      sync.Mutex
	closed  bool
	docs    map[uuid.UUID]*Document
	thumbs  map[uuid.UUID]image.Image
	pending map[uuid.UUID]int64 // document -> requesting context

	taskFinished rx.Event[struct{}]
}

// Option configures a Session.
type Option func(*Session)

// WithRunner sets how download tasks are started. The default runs each
// task on its own goroutine.
func WithRunner(run func(task func())) Option {
	return func(s *Session) { s.run = run }
}

// WithLogger sets the session logger.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Session) { s.log = log }
}

// NewSession creates a session. post must run its argument on the
// goroutine that consumes session events.
func NewSession(covers CoverSource, post func(func()), opts ...Option) *Session {
	s := &Session{
		covers:  covers,
		post:    post,
		run:     func(task func()) { go task() },
		log:     logrus.WithField("component", "document"),
		docs:    make(map[uuid.UUID]*Document),
		thumbs:  make(map[uuid.UUID]image.Image),
		pending: make(map[uuid.UUID]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open registers the audio file at path, reading its tags.
// Files without readable tags are registered with a name derived from the
// file name.
func (s *Session) Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info := Info{Path: path}
	m, err := tag.ReadFrom(f)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Debug("no readable tags")
	} else {
		info.Title = m.Title()
		info.Performer = m.Artist()
		info.HasCover = m.Picture() != nil
	}
	if !info.HasCover {
		info.HasCover = folderArt(filepath.Dir(path)) != ""
	}

	if s.Closed() {
		return nil, ErrSessionClosed
	}
	return s.Add(info), nil
}

// Add registers a document from known metadata. Adding the same path
// twice returns the existing document.
func (s *Session) Add(info Info) *Document {
	id := IDForPath(info.Path)

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[id]; ok {
		return doc
	}
	doc := &Document{
		id:      id,
		info:    info,
		name:    FormatSongName(info.Path, info.Title, info.Performer),
		session: s,
	}
	s.docs[id] = doc
	return doc
}

// Document returns a registered document by ID.
func (s *Session) Document(id uuid.UUID) (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// DownloaderTaskFinished fires on the session goroutine whenever a
// thumbnail load completes, successfully or not.
func (s *Session) DownloaderTaskFinished() *rx.Event[struct{}] {
	return &s.taskFinished
}

// Active reports whether the session is open.
func (s *Session) Active() bool {
	return !s.Closed()
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close stops accepting downloads. Loads already running finish silently.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Pending returns the number of thumbnail loads in flight.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Session) thumbnail(id uuid.UUID) image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thumbs[id]
}

func (s *Session) requestThumbnail(doc *Document, contextID int64) {
	s.mu.Lock()
	if s.closed || !doc.info.HasCover {
		s.mu.Unlock()
		return
	}
	if _, ok := s.thumbs[doc.id]; ok {
		s.mu.Unlock()
		return
	}
	if _, ok := s.pending[doc.id]; ok {
		s.mu.Unlock()
		return
	}
	s.pending[doc.id] = contextID
	s.mu.Unlock()

	path := doc.info.Path
	s.run(func() {
		img, err := s.covers.Cover(path)
		s.post(func() { s.finish(doc, img, err) })
	})
}

func (s *Session) finish(doc *Document, img image.Image, err error) {
	s.mu.Lock()
	contextID := s.pending[doc.id]
	delete(s.pending, doc.id)
	closed := s.closed
	if err == nil && img != nil && !closed {
		s.thumbs[doc.id] = img
	}
	s.mu.Unlock()

	if closed {
		return
	}
	log := s.log.WithFields(logrus.Fields{"path": doc.info.Path, "context": contextID})
	switch {
	case err != nil:
		log.WithError(err).Warn("thumbnail load failed")
	case img == nil:
		log.Debug("no cover found")
	default:
		log.WithField("bounds", img.Bounds().Size()).Debug("thumbnail loaded")
	}
	s.taskFinished.Emit(struct{}{})
}
