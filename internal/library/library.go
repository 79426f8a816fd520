// Package library keeps the user's decks as text files in a directory, one
// deck list per file.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kakita-works/shugenja/internal/deck"
	"github.com/kakita-works/shugenja/internal/deckfmt"
)

// Extension is the file extension of saved decks
const Extension = ".txt"

var (
	// ErrDeckNotFound is returned when no deck file exists under a name
	ErrDeckNotFound = errors.New("deck not found")
	// ErrInvalidName is returned for names that cannot be used as file names
	ErrInvalidName = errors.New("invalid deck name")
	// ErrUnresolvedCards is returned by Edit when saving would drop lines
	// whose cards are not in the catalog
	ErrUnresolvedCards = errors.New("deck has cards missing from the catalog")
)

// Library is a directory of deck files
type Library struct {
	Dir string
}

// New returns a library rooted at dir
func New(dir string) *Library {
	return &Library{Dir: dir}
}

// Init creates the library directory
func (l *Library) Init() error {
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return fmt.Errorf("error creating deck library: %w", err)
	}
	return nil
}

// Path returns the file a deck is stored in
func (l *Library) Path(name string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	return filepath.Join(l.Dir, strings.TrimSuffix(name, Extension)+Extension), nil
}

func checkName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != name || trimmed == "." || trimmed == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// List returns the names of saved decks, sorted
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading deck library: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a deck is saved under name
func (l *Library) Exists(name string) bool {
	path, err := l.Path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads a saved deck and resolves it with the importer
func (l *Library) Load(name string, im *deckfmt.Importer) (*deckfmt.Result, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("error opening deck: %w", err)
	}
	defer file.Close()

	res, err := im.Import(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Edit loads a deck, applies change and saves the result. When some lines
// of the saved deck no longer resolve, the file is left untouched and
// ErrUnresolvedCards is returned unless force is set. The import result is
// returned in both cases so callers can report the missing cards.
func (l *Library) Edit(name string, im *deckfmt.Importer, force bool, change func(deck.Deck) deck.Deck) (deck.Deck, *deckfmt.Result, error) {
	res, err := l.Load(name, im)
	if err != nil {
		return deck.Deck{}, nil, err
	}
	if len(res.MissingCards) > 0 && !force {
		return res.Deck, res, fmt.Errorf("%w: %s (%d)", ErrUnresolvedCards, name, len(res.MissingCards))
	}

	d := change(res.Deck)
	if err := l.Save(name, d); err != nil {
		return res.Deck, res, err
	}
	return d, res, nil
}

// Save writes the deck in the text format, replacing any previous version
func (l *Library) Save(name string, d deck.Deck) error {
	path, err := l.Path(name)
	if err != nil {
		return err
	}
	if err := l.Init(); err != nil {
		return err
	}

	// Write to a temporary file first so a failed save leaves the old deck
	tmp, err := os.CreateTemp(l.Dir, ".deck-*")
	if err != nil {
		return fmt.Errorf("error saving deck: %w", err)
	}
	if _, err := tmp.WriteString(deckfmt.Export(d)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error saving deck: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error saving deck: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error saving deck: %w", err)
	}
	return nil
}

// Delete removes a saved deck
func (l *Library) Delete(name string) error {
	path, err := l.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDeckNotFound, name)
		}
		return fmt.Errorf("error deleting deck: %w", err)
	}
	return nil
}
