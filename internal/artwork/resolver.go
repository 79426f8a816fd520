// Package artwork finds card images on disk and renders them for the
// terminal.
package artwork

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kakita-works/shugenja/internal/card"
)

// ErrNoArtwork is returned when no image can be found for a card face
var ErrNoArtwork = errors.New("no artwork found")

// imageExtensions are tried in order when searching by name
var imageExtensions = []string{"jpg", "jpeg", "png", "gif", "webp"}

// Resolver maps cards to image files under an art directory
type Resolver struct {
	ArtDir string
	Cache  *Cache // optional
}

// NewResolver returns a resolver for dir. cache may be nil.
func NewResolver(dir string, cache *Cache) *Resolver {
	return &Resolver{ArtDir: dir, Cache: cache}
}

// Front returns the image of the card's front face
func (r *Resolver) Front(c *card.Card) (string, error) {
	return r.resolve(c.ID+":front", c.Artwork, c.NameCandidates(), "")
}

// Back returns the image of the card's second face. Cards without a back
// face reference are looked up as "<name> Backside".
func (r *Resolver) Back(c *card.Card) (string, error) {
	ref := ""
	if c.Back != nil {
		ref = c.Back.Artwork
	}
	return r.resolve(c.ID+":back", ref, []string{c.Name}, " Backside")
}

func (r *Resolver) resolve(key, ref string, names []string, suffix string) (string, error) {
	if r.Cache != nil {
		if path, ok := r.Cache.Get(key); ok {
			if fileExists(path) {
				return path, nil
			}
			r.Cache.Invalidate(key)
		}
	}

	path, err := r.find(ref, names, suffix)
	if err != nil {
		return "", err
	}
	if r.Cache != nil {
		r.Cache.Put(key, path)
	}
	return path, nil
}

func (r *Resolver) find(ref string, names []string, suffix string) (string, error) {
	if path := r.fromReference(ref); path != "" {
		return path, nil
	}

	if r.ArtDir == "" {
		return "", fmt.Errorf("%w: no art directory configured", ErrNoArtwork)
	}

	fsys := os.DirFS(r.ArtDir)
	for _, name := range names {
		if strings.ContainsAny(name, `/\`) {
			continue
		}
		pattern := "**/" + escapeMeta(name+suffix) + ".{" + strings.Join(extensionVariants(), ",") + "}"
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return "", fmt.Errorf("search artwork: %w", err)
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			return filepath.Join(r.ArtDir, filepath.FromSlash(matches[0])), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoArtwork, strings.Join(names, ", "))
}

// fromReference joins an artwork reference under the art directory. Web
// style references ("/images/x.jpg") are taken relative to it.
func (r *Resolver) fromReference(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	ref = strings.TrimPrefix(ref, "/images/")
	ref = strings.TrimPrefix(ref, "/")

	path := filepath.Join(r.ArtDir, filepath.FromSlash(ref))
	if fileExists(path) {
		return path
	}
	return ""
}

func extensionVariants() []string {
	out := make([]string, 0, len(imageExtensions)*2)
	for _, ext := range imageExtensions {
		out = append(out, ext, strings.ToUpper(ext))
	}
	return out
}

// escapeMeta quotes glob metacharacters in a literal file name
func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\', ',':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
