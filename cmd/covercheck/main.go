// Command covercheck prints what the media controls would show for each
// given file: the composed title and performer, and the thumbnail bounds.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/nowplaying/internal/document"
	"github.com/llehouerou/nowplaying/internal/playlist"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <files or folders...>", os.Args[0])
	}

	paths, err := playlist.CollectPaths(os.Args[1:])
	if err != nil {
		log.Fatalf("collect: %v", err)
	}

	covers := document.TagCovers{}
	session := document.NewSession(covers, func(fn func()) { fn() })
	defer session.Close()

	for _, path := range paths {
		doc, err := session.Open(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			continue
		}
		title, performer := doc.SongName().ComposedName()
		fmt.Printf("%s\n  title:     %s\n  performer: %s\n", path, title, performer)

		if st, err := os.Stat(path); err == nil {
			fmt.Printf("  size:      %s\n", humanize.Bytes(uint64(st.Size())))
		}
		if !doc.IsSongWithCover() {
			fmt.Println("  cover:     none")
			continue
		}
		img, err := covers.Cover(path)
		if err != nil || img == nil {
			fmt.Printf("  cover:     unreadable (%v)\n", err)
			continue
		}
		b := img.Bounds()
		fmt.Printf("  cover:     %dx%d\n", b.Dx(), b.Dy())
	}
}
