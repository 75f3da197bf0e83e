package document

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for embedded covers
	_ "image/png"  // register decoder for embedded covers
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/dustin/go-humanize"
	"github.com/nfnt/resize"
	"github.com/sirupsen/logrus"
)

// DefaultThumbnailSize bounds the longest side of loaded thumbnails.
const DefaultThumbnailSize = 256

// Cover image names looked up next to a file without embedded art.
var folderArtNames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
}

// TagCovers loads embedded cover art with dhowden/tag, falling back to an
// image in the file's folder, and scales it down.
type TagCovers struct {
	Size uint // longest side in pixels, DefaultThumbnailSize if zero
	Log  *logrus.Entry
}

// Cover implements CoverSource.
func (c TagCovers) Cover(path string) (image.Image, error) {
	data, err := embeddedPicture(path)
	source := "embedded"
	if data == nil {
		if art := folderArt(filepath.Dir(path)); art != "" {
			if data, err = os.ReadFile(art); err != nil {
				return nil, err
			}
			source = filepath.Base(art)
		}
	}
	if data == nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode cover of %s: %w", path, err)
	}

	size := c.Size
	if size == 0 {
		size = DefaultThumbnailSize
	}
	if c.Log != nil {
		c.Log.WithFields(logrus.Fields{
			"path":   path,
			"format": format,
			"source": source,
			"size":   humanize.Bytes(uint64(len(data))),
		}).Debug("decoded cover")
	}
	return resize.Thumbnail(size, size, img, resize.Lanczos3), nil
}

func embeddedPicture(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read tags of %s: %w", path, err)
	}
	pic := m.Picture()
	if pic == nil {
		return nil, nil
	}
	return pic.Data, nil
}

// folderArt returns the first cover image found in dir, or "".
func folderArt(dir string) string {
	for _, name := range folderArtNames {
		for _, candidate := range []string{name, strings.ToUpper(name)} {
			p := filepath.Join(dir, candidate)
			if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
				return p
			}
		}
	}
	return ""
}
