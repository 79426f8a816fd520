package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kakita-works/shugenja/internal/catalog"
	"github.com/kakita-works/shugenja/internal/config"
	"github.com/kakita-works/shugenja/internal/deckfmt"
	"github.com/kakita-works/shugenja/internal/keyword"
	"github.com/kakita-works/shugenja/internal/library"
)

var (
	cfgFile     string
	catalogPath string
	verbose     bool

	logger *zap.Logger
	cfg    *config.Config
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "shugenja",
	Short: "Deck builder and card catalog for Samurai Extended",
	Long: `Shugenja is a command-line deck builder for the Samurai Extended format.
It searches the card catalog, keeps a library of deck lists, imports and
exports the shared text format, and checks decks against the format rules.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// Load config, creating the default file on first run
		if cfgFile != "" {
			cfg, err = config.LoadConfigFrom(cfgFile)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if catalogPath != "" {
			cfg.CatalogPath = catalogPath
		}

		logger.Debug("config loaded",
			zap.String("path", cfg.Path()),
			zap.String("catalog", cfg.CatalogPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/shugenja/config.toml)")
	RootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "card catalog file (JSON or YAML)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// catalogOptions returns the load options for the configured vocabulary
func catalogOptions() catalog.Options {
	return catalog.Options{
		Normalizer: keyword.NewNormalizer(cfg.KeywordVocabulary()),
		Logger:     logger,
	}
}

// loadCatalog loads the configured catalog. A missing or malformed catalog
// is reported and an empty catalog is used instead.
func loadCatalog() *catalog.Catalog {
	c, err := catalog.Load(cfg.CatalogPath, catalogOptions())
	if err != nil {
		color.New(color.FgYellow).Fprintf(os.Stderr, "Warning: %v\n", err)
		color.New(color.FgYellow).Fprintln(os.Stderr, "Continuing with an empty catalog. Use --catalog or 'shugenja catalog build'.")
		return catalog.Empty()
	}
	return c
}

// newImporter returns a deck importer over the catalog and configured rules
func newImporter(c *catalog.Catalog) *deckfmt.Importer {
	return deckfmt.NewImporter(c, cfg.DeckRules(), cfg.Format.Name)
}

// deckLibrary returns the user's deck library
func deckLibrary() *library.Library {
	return library.New(config.GetDeckLibraryPath())
}

// deckName returns the named deck, or the default deck when name is empty
func deckName(name string) (string, error) {
	if name != "" {
		return name, nil
	}
	if cfg.DefaultDeck == "" {
		return "", fmt.Errorf("no deck given and no default deck set; use --deck or 'shugenja deck set-default'")
	}
	return cfg.DefaultDeck, nil
}
