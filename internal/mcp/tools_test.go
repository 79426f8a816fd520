package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakita-works/shugenja/internal/catalog"
	"github.com/kakita-works/shugenja/internal/deck"
	"github.com/kakita-works/shugenja/internal/validator"
)

const catalogJSON = `[
  {"id": "sh1", "name": "Midday Shadow Court", "type": "stronghold", "clan": "Scorpion", "goldProduction": 5},
  {"id": "p1", "name": "Shosuro Kameyoi", "type": "personality", "clan": "Scorpion",
   "cost": 6, "force": 3, "chi": 3, "text": "<b>Samurai &#8226; Courtier</b><br><b>Open:</b> Gain 2 Honor."},
  {"id": "p2", "name": "Moto Chen - exp2", "type": "personality", "clan": "Unicorn",
   "cost": "9", "force": "4", "text": "<b>Unique &#8226; Cavalry</b>"},
  {"id": "s1", "name": "Kharmic Strike", "type": "strategy", "cost": 0, "focus": 2, "banned": true},
  {"id": "h1", "name": "Copper Mine", "type": "holding", "cost": 5, "goldProduction": "+2"}
]`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0644))

	store, err := catalog.NewStore(path, catalog.Options{})
	require.NoError(t, err)
	return NewServer(store, deck.DefaultRules(), validator.Format{Name: "Samurai Extended"}, nil)
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", res.Content[0])
	return ""
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var v T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	return v
}

func TestSearchCards(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleSearchCards(context.Background(), call(map[string]any{
		"category": "personality",
		"costMin":  7,
	}))
	require.NoError(t, err)

	resp := decode[SearchResponse](t, res)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Cards, 1)
	assert.Equal(t, "p2", resp.Cards[0].ID)
	assert.Equal(t, "Moto Chen - Experienced 2", resp.Cards[0].DisplayName)
	assert.Equal(t, 4, resp.Cards[0].Stats["force"])
}

func TestSearchCardsKeywordsAndLimit(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleSearchCards(context.Background(), call(map[string]any{
		"keywords": "Courtier, Cavalry",
		"limit":    1,
	}))
	require.NoError(t, err)

	resp := decode[SearchResponse](t, res)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Returned)
	assert.Equal(t, "p1", resp.Cards[0].ID)
}

func TestSearchCardsBadCategory(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleSearchCards(context.Background(), call(map[string]any{"category": "dragon"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestCardDetails(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleCardDetails(context.Background(), call(map[string]any{"name": "Shosuro Kameyoi"}))
	require.NoError(t, err)
	v := decode[CardView](t, res)
	assert.Equal(t, []string{"Samurai", "Courtier"}, v.Keywords)
	assert.Equal(t, "**Open:** Gain 2 Honor.", v.Text)

	res, err = s.handleCardDetails(context.Background(), call(map[string]any{"name": "h1"}))
	require.NoError(t, err)
	assert.Equal(t, "Copper Mine", decode[CardView](t, res).Name)

	res, err = s.handleCardDetails(context.Background(), call(map[string]any{"name": "Nobody"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestValidateDeck(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleValidateDeck(context.Background(), call(map[string]any{
		"deck": "# Stronghold\n1 Midday Shadow Court\n\n# Dynasty\n3 Shosuro Kameyoi\n2 Unknown Card\n1 Kharmic Strike\nbogus line",
	}))
	require.NoError(t, err)

	report := decode[DeckReport](t, res)
	assert.False(t, report.Validation.Valid)
	assert.Contains(t, report.Validation.Errors, "Dynasty deck needs at least 40 cards (currently 3)")
	assert.Equal(t, 1, report.Validation.StrongholdCount)
	require.Len(t, report.Deck.Stronghold, 1)
	require.Len(t, report.Deck.Dynasty, 1)
	assert.Equal(t, "Personalities", report.Deck.Dynasty[0].Section)
	assert.Equal(t, 3, report.Deck.Dynasty[0].Count)
	require.Len(t, report.MissingCards, 1)
	assert.Equal(t, "Unknown Card", report.MissingCards[0].Name)
	require.Len(t, report.BannedCards, 1)
	assert.Equal(t, "This card is banned in Samurai Extended format", report.BannedCards[0].Reason)
	assert.Equal(t, 1, report.Skipped)
}

func TestExportDeck(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleExportDeck(context.Background(), call(map[string]any{
		"deck": "2 Copper Mine\n1 Midday Shadow Court",
	}))
	require.NoError(t, err)

	resp := decode[ExportResponse](t, res)
	assert.Equal(t, "# Stronghold\n1 Midday Shadow Court\n\n# Dynasty\n# Holdings (2)\n2 Copper Mine\n", resp.Text)
	assert.Empty(t, resp.MissingCards)
}

func TestListValues(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleListValues(context.Background(), call(map[string]any{"field": "clan"}))
	require.NoError(t, err)
	resp := decode[ValuesResponse](t, res)
	assert.Equal(t, "faction", resp.Field)
	assert.Equal(t, []string{"Scorpion", "Unicorn"}, resp.Values)

	res, err = s.handleListValues(context.Background(), call(map[string]any{"field": "color"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestNewMCPServer(t *testing.T) {
	s := newTestServer(t)
	assert.NotNil(t, s.NewMCPServer("shugenja", "test"))
}
