package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/kakita-works/shugenja/internal/deck"
	"github.com/kakita-works/shugenja/internal/keyword"
	"github.com/kakita-works/shugenja/internal/validator"
)

const appName = "shugenja"

// Config represents the application configuration
type Config struct {
	DefaultDeck string       `toml:"default_deck"`
	CatalogPath string       `toml:"catalog_path"`
	ArtDir      string       `toml:"art_dir"`
	Rules       RulesConfig  `toml:"rules"`
	Format      FormatConfig `toml:"format"`
	Vocabulary  []string     `toml:"vocabulary,omitempty"`

	path string
}

// RulesConfig holds the deck composition limits
type RulesConfig struct {
	MinDynasty int `toml:"min_dynasty"`
	MinFate    int `toml:"min_fate"`
	MaxCopies  int `toml:"max_copies"`
}

// FormatConfig describes the play format decks are checked against
type FormatConfig struct {
	Name   string      `toml:"name"`
	Legal  []string    `toml:"legal"`
	Banned []BanConfig `toml:"banned,omitempty"`
}

// BanConfig names a card banned in the format
type BanConfig struct {
	Name   string `toml:"name"`
	Reason string `toml:"reason,omitempty"`
}

// Default returns the configuration written on first run
func Default() *Config {
	rules := deck.DefaultRules()
	return &Config{
		DefaultDeck: "",
		CatalogPath: filepath.Join(GetDataDir(), "cards.json"),
		ArtDir:      filepath.Join(GetDataDir(), "images"),
		Rules: RulesConfig{
			MinDynasty: rules.MinDynasty,
			MinFate:    rules.MinFate,
			MaxCopies:  rules.MaxCopies,
		},
		Format: FormatConfig{
			Name:  "Samurai Extended",
			Legal: []string{"celestial", "emperor", "samurai", "ivory", "20F"},
		},
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetDataDir returns the application data directory
func GetDataDir() string {
	return filepath.Join(GetXDGDataHome(), appName)
}

// GetDeckLibraryPath returns the path to the deck library
func GetDeckLibraryPath() string {
	return filepath.Join(GetDataDir(), "decks")
}

// GetCacheDir returns the cache directory for rendered art and resolved paths
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), appName)
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), appName, "config.toml")
}

// LoadConfig loads the config file from its default location
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(GetConfigFilePath())
}

// LoadConfigFrom loads the config file at path, creating it with defaults
// when it does not exist
func LoadConfigFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return createDefaultConfig(path)
	}

	// Start from defaults so omitted keys keep their default values
	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.path = path
	config.fillZeroRules()

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) (*Config, error) {
	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	config := Default()
	config.path = path
	if err := config.Save(); err != nil {
		return nil, err
	}
	return config, nil
}

// fillZeroRules replaces non-positive limits with the defaults
func (c *Config) fillZeroRules() {
	def := deck.DefaultRules()
	if c.Rules.MinDynasty <= 0 {
		c.Rules.MinDynasty = def.MinDynasty
	}
	if c.Rules.MinFate <= 0 {
		c.Rules.MinFate = def.MinFate
	}
	if c.Rules.MaxCopies <= 0 {
		c.Rules.MaxCopies = def.MaxCopies
	}
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	if c.path == "" {
		return GetConfigFilePath()
	}
	return c.path
}

// Save writes the config back to its file
func (c *Config) Save() error {
	file, err := os.Create(c.Path())
	if err != nil {
		return fmt.Errorf("error opening config file: %w", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// DeckRules converts the configured limits. The copy limit is at least one.
func (c *Config) DeckRules() deck.Rules {
	rules := deck.Rules{
		MinDynasty: c.Rules.MinDynasty,
		MinFate:    c.Rules.MinFate,
		MaxCopies:  c.Rules.MaxCopies,
	}
	rules.MaxCopies = rules.CopyLimit()
	return rules
}

// ValidatorFormat converts the configured format
func (c *Config) ValidatorFormat() validator.Format {
	return validator.Format{
		Name:  c.Format.Name,
		Legal: append([]string(nil), c.Format.Legal...),
	}
}

// BanList maps banned card names to their reason
func (c *Config) BanList() map[string]string {
	bans := make(map[string]string, len(c.Format.Banned))
	for _, b := range c.Format.Banned {
		if b.Name != "" {
			bans[b.Name] = b.Reason
		}
	}
	return bans
}

// KeywordVocabulary returns the configured vocabulary, or the built-in one
// when none is configured
func (c *Config) KeywordVocabulary() *keyword.Vocabulary {
	if len(c.Vocabulary) == 0 {
		return keyword.DefaultVocabulary()
	}
	return keyword.NewVocabulary(c.Vocabulary)
}

// GetDefaultDeck returns the default deck name from config
func GetDefaultDeck() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultDeck, nil
}

// SetDefaultDeck sets the default deck in the config
func SetDefaultDeck(deckName string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultDeck = deckName
	return config.Save()
}
