// Package mcp exposes catalog search and deck checking as MCP tools served
// over stdio.
package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/kakita-works/shugenja/internal/card"
	"github.com/kakita-works/shugenja/internal/catalog"
	"github.com/kakita-works/shugenja/internal/deck"
	"github.com/kakita-works/shugenja/internal/deckfmt"
	"github.com/kakita-works/shugenja/internal/search"
	"github.com/kakita-works/shugenja/internal/validator"
)

// defaultLimit caps search results unless the caller asks otherwise
const defaultLimit = 50

// Server answers tool calls against the current catalog snapshot
type Server struct {
	store  *catalog.Store
	rules  deck.Rules
	format validator.Format
	log    *zap.Logger
}

// NewServer returns a tool server. log may be nil.
func NewServer(store *catalog.Store, rules deck.Rules, format validator.Format, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{store: store, rules: rules, format: format, log: log}
}

// NewMCPServer builds an MCP server with every tool registered
func (s *Server) NewMCPServer(name, version string) *server.MCPServer {
	ms := server.NewMCPServer(name, version)
	s.RegisterTools(ms)
	return ms
}

// RegisterTools adds all tools to the MCP server
func (s *Server) RegisterTools(ms *server.MCPServer) {
	ms.AddTool(searchCardsTool(), s.handleSearchCards)
	ms.AddTool(cardDetailsTool(), s.handleCardDetails)
	ms.AddTool(validateDeckTool(), s.handleValidateDeck)
	ms.AddTool(exportDeckTool(), s.handleExportDeck)
	ms.AddTool(listValuesTool(), s.handleListValues)
}

// --- Tool definitions ---

func searchCardsTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Search the card catalog. All filters are optional and combine with AND. " +
			"Returns matching cards in catalog order."),
		mcp.WithString("searchTerm", mcp.Description("Case-insensitive text matched against name, rules text and keywords")),
		mcp.WithString("category", mcp.Description("Card type, e.g. personality, holding, strategy; 'all' for any")),
		mcp.WithString("faction", mcp.Description("Clan, e.g. Crab; 'all' for any")),
		mcp.WithString("keywords", mcp.Description("Comma-separated keywords; a card matches when it has any of them")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of cards to return (default 50)")),
	}
	for _, a := range card.Attributes {
		opts = append(opts,
			mcp.WithNumber(a.Key()+"Min", mcp.Description("Minimum "+a.String()+" (inclusive)")),
			mcp.WithNumber(a.Key()+"Max", mcp.Description("Maximum "+a.String()+" (inclusive)")),
		)
	}
	return mcp.NewTool("search_cards", opts...)
}

func cardDetailsTool() mcp.Tool {
	return mcp.NewTool("card_details",
		mcp.WithDescription("Get the full details of one card, looked up by exact name, display name or ID."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Card name, e.g. 'Moto Chen - Experienced 2', or card ID")),
	)
}

func validateDeckTool() mcp.Tool {
	return mcp.NewTool("validate_deck",
		mcp.WithDescription("Import a deck list in text format ('<quantity> <card name>' per line, '#' comments) "+
			"and report its grouped contents, validation errors and warnings, and unresolved or banned cards."),
		mcp.WithString("deck", mcp.Required(), mcp.Description("Deck list text")),
	)
}

func exportDeckTool() mcp.Tool {
	return mcp.NewTool("export_deck",
		mcp.WithDescription("Import a deck list and write it back in canonical text format, grouped by section."),
		mcp.WithString("deck", mcp.Required(), mcp.Description("Deck list text")),
	)
}

func listValuesTool() mcp.Tool {
	return mcp.NewTool("list_values",
		mcp.WithDescription("List the distinct values of a card field, sorted."),
		mcp.WithString("field", mcp.Required(),
			mcp.Description("One of: category, faction, keyword, legality, set, rarity")),
	)
}

// --- Tool handlers ---

func (s *Server) handleSearchCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := searchOptions(request)
	criteria, err := opts.Criteria()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	limit := request.GetInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}

	matches := search.Filter(s.store.Catalog().Cards(), criteria)
	resp := SearchResponse{Total: len(matches), Cards: []CardView{}}
	for i, c := range matches {
		if i >= limit {
			break
		}
		resp.Cards = append(resp.Cards, newCardView(c, false))
	}
	resp.Returned = len(resp.Cards)

	s.log.Debug("search_cards", zap.Int("total", resp.Total), zap.Int("returned", resp.Returned))
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// searchOptions reads the flat filter options from tool arguments. Range
// bounds are set only when the argument is present.
func searchOptions(request mcp.CallToolRequest) search.Options {
	opts := search.Options{
		SearchTerm: request.GetString("searchTerm", ""),
		Category:   request.GetString("category", ""),
		Faction:    request.GetString("faction", ""),
	}
	if kw := request.GetString("keywords", ""); kw != "" {
		opts.Keywords = strings.Split(kw, ",")
	}

	args := request.GetArguments()
	for _, a := range card.Attributes {
		lo, hi := opts.Bounds(a)
		if _, ok := args[a.Key()+"Min"]; ok {
			v := request.GetInt(a.Key()+"Min", 0)
			*lo = &v
		}
		if _, ok := args[a.Key()+"Max"]; ok {
			v := request.GetInt(a.Key()+"Max", 0)
			*hi = &v
		}
	}
	return opts
}

func (s *Server) handleCardDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := strings.TrimSpace(request.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	cat := s.store.Catalog()
	c, ok := cat.FindByName(name)
	if !ok {
		var err error
		c, err = cat.FindByID(name)
		if errors.Is(err, catalog.ErrCardNotFound) {
			return mcp.NewToolResultErrorf("No card named %q", name), nil
		}
	}
	return mcp.NewToolResultText(respondJSON(newCardView(c, true))), nil
}

func (s *Server) importDeck(request mcp.CallToolRequest) (*deckfmt.Result, *mcp.CallToolResult) {
	text := request.GetString("deck", "")
	im := deckfmt.NewImporter(s.store.Catalog(), s.rules, s.format.Name)
	res, err := im.ImportString(text)
	if err != nil {
		return nil, mcp.NewToolResultErrorf("Failed to read deck: %v", err)
	}
	return res, nil
}

func (s *Server) handleValidateDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, errResult := s.importDeck(request)
	if errResult != nil {
		return errResult, nil
	}

	results := validator.NewValidator(s.rules, s.format).Validate(res.Deck)
	report := DeckReport{
		Deck:         newGroupsView(res.Deck),
		Validation:   results,
		MissingCards: res.MissingCards,
		BannedCards:  res.BannedCards,
		Skipped:      res.Skipped,
	}

	s.log.Debug("validate_deck",
		zap.Bool("valid", results.Valid),
		zap.Int("missing", len(res.MissingCards)))
	return mcp.NewToolResultText(respondJSON(report)), nil
}

func (s *Server) handleExportDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, errResult := s.importDeck(request)
	if errResult != nil {
		return errResult, nil
	}

	resp := ExportResponse{Text: deckfmt.Export(res.Deck), MissingCards: res.MissingCards}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (s *Server) handleListValues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	field, err := catalog.ParseField(request.GetString("field", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	values, err := s.store.Catalog().UniqueValues(field)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(ValuesResponse{Field: string(field), Values: values})), nil
}
