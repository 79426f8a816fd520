package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kakita-works/shugenja/internal/catalog"
	"github.com/kakita-works/shugenja/internal/mcp"
)

var version = "dev"

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve catalog search and deck checking as MCP tools over stdio",
	Long: `Mcp starts a Model Context Protocol server on standard input and output with
the tools search_cards, card_details, validate_deck, export_deck and
list_values. The catalog file is watched and reloaded when it changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := catalog.NewStore(cfg.CatalogPath, catalogOptions())
		if err != nil {
			if !errors.Is(err, catalog.ErrDataUnavailable) {
				return err
			}
			logger.Warn("serving an empty catalog until the file is available", zap.Error(err))
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			if err := store.Watch(ctx); err != nil {
				logger.Warn("catalog watcher stopped", zap.Error(err))
			}
		}()

		s := mcp.NewServer(store, cfg.DeckRules(), cfg.ValidatorFormat(), logger)
		if err := server.ServeStdio(s.NewMCPServer("shugenja", version)); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(mcpCmd)
}
