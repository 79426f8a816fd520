package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakita-works/shugenja/internal/deck"
)

func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	return root
}

func TestPaths(t *testing.T) {
	root := isolate(t)

	assert.Equal(t, filepath.Join(root, "config", "shugenja", "config.toml"), GetConfigFilePath())
	assert.Equal(t, filepath.Join(root, "data", "shugenja", "decks"), GetDeckLibraryPath())
	assert.Equal(t, filepath.Join(root, "cache", "shugenja"), GetCacheDir())
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.FileExists(t, GetConfigFilePath())
	assert.Equal(t, deck.DefaultRules(), cfg.DeckRules())
	assert.Equal(t, "Samurai Extended", cfg.Format.Name)
	assert.Contains(t, cfg.Format.Legal, "samurai")
	assert.Equal(t, filepath.Join(GetDataDir(), "cards.json"), cfg.CatalogPath)

	again, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg.DeckRules(), again.DeckRules())
	assert.Equal(t, cfg.Format, again.Format)
}

func TestLoadConfigFromFile(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_deck = "scorpion"
catalog_path = "/srv/cards.yaml"
vocabulary = ["Samurai", "Ninja"]

[rules]
min_fate = 30

[format]
name = "Twenty Festivals"
legal = ["20F"]

[[format.banned]]
name = "Kharmic Strike"
reason = "too strong"
`), 0644))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "scorpion", cfg.DefaultDeck)
	assert.Equal(t, "/srv/cards.yaml", cfg.CatalogPath)
	assert.Equal(t, deck.Rules{MinDynasty: 40, MinFate: 30, MaxCopies: 3}, cfg.DeckRules())
	assert.Equal(t, []string{"20F"}, cfg.ValidatorFormat().Legal)
	assert.Equal(t, map[string]string{"Kharmic Strike": "too strong"}, cfg.BanList())
	assert.Equal(t, 2, cfg.KeywordVocabulary().Len())
	assert.Equal(t, path, cfg.Path())
}

func TestLoadConfigMalformed(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("rules = [unterminated"), 0644))

	_, err := LoadConfigFrom(path)
	assert.Error(t, err)
}

func TestSetDefaultDeck(t *testing.T) {
	isolate(t)

	require.NoError(t, SetDefaultDeck("crane-duelists"))
	name, err := GetDefaultDeck()
	require.NoError(t, err)
	assert.Equal(t, "crane-duelists", name)
}

func TestKeywordVocabularyDefault(t *testing.T) {
	isolate(t)
	cfg := Default()
	_, ok := cfg.KeywordVocabulary().Lookup("samurai")
	assert.True(t, ok)
}

func TestDeckRulesCopyLimit(t *testing.T) {
	isolate(t)
	c := Default()
	assert.Equal(t, 3, c.DeckRules().MaxCopies)

	c.Rules.MaxCopies = 0
	assert.Equal(t, 1, c.DeckRules().MaxCopies)
}
