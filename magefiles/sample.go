//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// sampleAlbums is a tiny hand-tokenized corpus for trying the CLI.
var sampleAlbums = map[string]string{
	"bob-dylan-1963-the-freewheelin.yaml": `artist: bob dylan
album: The Freewheelin' Bob Dylan
year: 1963
compilation: false
songs:
  - id: blowin-in-the-wind
    title: Blowin' in the Wind
    tokens: [how, many, roads, must, a, man, walk, down, the, answer, is, blowin, in, the, wind]
  - id: a-hard-rain
    title: A Hard Rain's A-Gonna Fall
    tokens: [and, it's, a, hard, rain, a, gonna, fall, hard, rain]
`,
	"bob-dylan-1967-greatest-hits.yaml": `artist: bob dylan
album: Greatest Hits
year: 1967
compilation: true
songs:
  - id: like-a-rolling-stone
    title: Like a Rolling Stone
    tokens: [how, does, it, feel, to, be, on, your, own, like, a, rolling, stone]
`,
	"frank-zappa-1969-hot-rats.yaml": `artist: frank zappa
album: Hot Rats
year: 1969
compilation: false
songs:
  - id: willie-the-pimp
    title: Willie the Pimp
    tokens: [i'm, a, little, pimp, with, my, hair, gassed, back]
`,
}

// Sample writes a small sample corpus into songs/.
func Sample() error {
	mg.Deps(Init)
	for name, content := range sampleAlbums {
		path := filepath.Join("songs", name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	return nil
}
