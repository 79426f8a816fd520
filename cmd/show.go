package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/kakita-works/shugenja/internal/artwork"
	"github.com/kakita-works/shugenja/internal/card"
	"github.com/kakita-works/shugenja/internal/catalog"
	"github.com/kakita-works/shugenja/internal/config"
)

const (
	artWidth  = 32
	artHeight = 24
)

var showCmd = &cobra.Command{
	Use:   "show [card name]",
	Short: "Display a card with ANSI art",
	Long: `Show displays the details of a card next to ANSI terminal art generated from
its image. Cards are looked up by name, display name (for example
"Moto Chen - Experienced 2") or ID.

Images are searched under art_dir from the config. Resolved image paths and
generated art are cached under $XDG_CACHE_HOME/shugenja.

Examples:
  shugenja show Moto Chen
  shugenja show --back "Hida Kisada"
  shugenja show --no-art "Kharmic Strike"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		back, _ := cmd.Flags().GetBool("back")
		noArt, _ := cmd.Flags().GetBool("no-art")
		name := strings.Join(args, " ")

		cat := loadCatalog()
		c, ok := cat.FindByName(name)
		if !ok {
			var err error
			if c, err = cat.FindByID(name); err != nil {
				return fmt.Errorf("%w: %s", catalog.ErrCardNotFound, name)
			}
		}

		ansiArt := ""
		if !noArt {
			ansiArt = cardArt(c, back)
		}

		displayCard(c, ansiArt, back)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("back", false, "show the back face of a dual-sided card")
	showCmd.Flags().Bool("no-art", false, "do not render card art")
}

// cardArt resolves and renders the art of a card face. Missing art is not
// an error; the card is shown without it.
func cardArt(c *card.Card, back bool) string {
	cacheDir := config.GetCacheDir()
	paths, err := artwork.OpenCache(filepath.Join(cacheDir, "artwork.json"))
	if err != nil {
		logger.Warn("artwork cache unreadable, starting over", zap.Error(err))
	}
	defer func() {
		if err := paths.Save(); err != nil {
			logger.Warn("saving artwork cache", zap.Error(err))
		}
	}()

	resolver := artwork.NewResolver(cfg.ArtDir, paths)
	var imagePath string
	if back {
		imagePath, err = resolver.Back(c)
	} else {
		imagePath, err = resolver.Front(c)
	}
	if err != nil {
		if !errors.Is(err, artwork.ErrNoArtwork) {
			logger.Warn("resolving artwork", zap.String("card", c.ID), zap.Error(err))
		}
		logger.Debug("no artwork", zap.String("card", c.ID), zap.Error(err))
		return ""
	}

	art, err := artwork.NewRenderer(filepath.Join(cacheDir, "ansi_cache")).Render(imagePath, artWidth, artHeight)
	if err != nil {
		logger.Warn("rendering artwork", zap.String("path", imagePath), zap.Error(err))
		return ""
	}
	return art
}

// renderMarkdown renders rules text for the terminal, falling back to the
// plain text when the renderer fails
func renderMarkdown(text string, width int) []string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		// Rules text uses single line breaks between abilities
		out, err := r.Render(strings.ReplaceAll(text, "\n", "\n\n"))
		if err == nil {
			return strings.Split(strings.Trim(out, "\n"), "\n")
		}
	}
	return wrapText(text, width)
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		var currentLine string
		for _, word := range strings.Fields(paragraph) {
			switch {
			case currentLine == "":
				currentLine = word
			case len(currentLine)+1+len(word) <= width:
				currentLine += " " + word
			default:
				result = append(result, currentLine)
				currentLine = word
			}
		}
		result = append(result, currentLine)
	}
	return result
}

// titleCase turns "honor-requirement" into "Honor Requirement"
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// displayCard displays the card information with ANSI art
func displayCard(c *card.Card, ansiArt string, back bool) {
	// Split the ANSI art into lines
	var ansiLines []string
	if ansiArt != "" {
		ansiLines = strings.Split(strings.TrimSuffix(ansiArt, "\n"), "\n")
	}
	maxAnsiWidth := 0
	for _, line := range ansiLines {
		if w := artwork.VisibleWidth(line); w > maxAnsiWidth {
			maxAnsiWidth = w
		}
	}

	// Get terminal width
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	label := func(s string) string { return colorize.CyanString("%-19s", s) }
	value := func(format string, a ...any) string { return colorize.HiWhiteString(format, a...) }

	var infoLines []string
	infoLines = append(infoLines, label("Card:")+value("%s", c.DisplayName()))
	infoLines = append(infoLines, label("Type:")+value("%s", titleCase(c.Category.String())))
	if super := c.Category.Super(); super != card.SuperNone {
		infoLines = append(infoLines, label("Deck:")+value("%s", super))
	}
	if c.Faction != "" {
		infoLines = append(infoLines, label("Clan:")+value("%s", c.Faction))
	}
	for _, a := range card.Attributes {
		if v, ok := c.Stats.Get(a); ok {
			infoLines = append(infoLines, label(titleCase(a.String())+":")+value("%d", v))
		}
	}

	keywords, text := c.Keywords, c.Text
	if back && c.Back != nil {
		keywords, text = c.Back.Keywords, c.Back.Text
	}
	if len(keywords) > 0 {
		infoLines = append(infoLines, label("Keywords:")+value("%s", strings.Join(keywords, " • ")))
	}
	if c.Set != "" {
		infoLines = append(infoLines, label("Set:")+value("%s", c.Set))
	}
	if c.Banned {
		reason := c.BannedReason
		if reason == "" {
			reason = "banned in " + cfg.Format.Name
		}
		infoLines = append(infoLines, label("Banned:")+colorize.RedString("%s", reason))
	}
	infoLines = append(infoLines, label("ID:")+value("%s", c.ID))

	// We'll display the ANSI art on the left and info on the right
	spacing := 4
	infoStartCol := 0
	if maxAnsiWidth > 0 {
		infoStartCol = maxAnsiWidth + spacing
	}

	infoWidth := width - infoStartCol - 4
	if infoWidth < 20 {
		infoWidth = 20
	}

	if text != "" {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, renderMarkdown(text, infoWidth)...)
	}
	if c.Flavor != "" && !back {
		infoLines = append(infoLines, "")
		for _, l := range wrapText(c.Flavor, infoWidth) {
			infoLines = append(infoLines, colorize.New(colorize.Italic, colorize.FgHiBlack).Sprint(l))
		}
	}
	if c.Artist != "" {
		infoLines = append(infoLines, "", colorize.HiBlackString("Art: %s", c.Artist))
	}

	fmt.Println()

	maxLines := max(len(ansiLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(ansiLines) {
			fmt.Print(ansiLines[i])
			fmt.Print(strings.Repeat(" ", max(0, infoStartCol-artwork.VisibleWidth(ansiLines[i]))))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}
		fmt.Println()
	}

	fmt.Println()
}
