package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kakita-works/shugenja/internal/card"
	"github.com/kakita-works/shugenja/internal/catalog"
	"github.com/kakita-works/shugenja/internal/search"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search the card catalog",
	Long: `Search lists the catalog cards matching every given filter. Text is matched
against card names, rules text and keywords; --keyword may be repeated and
matches cards having any of the keywords. Numeric ranges are inclusive.

Examples:
  shugenja search --type personality --clan Scorpion --cost-max 5
  shugenja search --keyword Cavalry --keyword Tactician
  shugenja search "Battle:" --type strategy
  shugenja search --values keyword`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := loadCatalog()

		if field, _ := cmd.Flags().GetString("values"); field != "" {
			return printValues(cat, field)
		}

		opts, err := searchFlags(cmd, args)
		if err != nil {
			return err
		}
		criteria, err := opts.Criteria()
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		matches := search.Filter(cat.Cards(), criteria)
		for i, c := range matches {
			if limit > 0 && i >= limit {
				fmt.Printf("... %d more\n", len(matches)-limit)
				break
			}
			printCardLine(c)
		}
		color.New(color.FgCyan).Printf("%d of %d cards\n", len(matches), cat.Len())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(searchCmd)

	f := searchCmd.Flags()
	f.StringP("text", "t", "", "text to find in names, rules text and keywords")
	f.String("type", "", "card type, e.g. personality, holding, strategy")
	f.String("clan", "", "clan alignment")
	f.StringSliceP("keyword", "k", nil, "keyword; repeat to match any of several")
	f.Int("limit", 0, "show at most this many cards")
	f.String("values", "", "list the values of a field instead: category, faction, keyword, legality, set, rarity")
	for _, a := range card.Attributes {
		f.Int(a.String()+"-min", 0, "minimum "+a.String())
		f.Int(a.String()+"-max", 0, "maximum "+a.String())
	}
}

// searchFlags collects the filter flags. Range bounds count only when the
// flag was given.
func searchFlags(cmd *cobra.Command, args []string) (search.Options, error) {
	f := cmd.Flags()
	text, _ := f.GetString("text")
	if len(args) > 0 {
		text = strings.TrimSpace(text + " " + strings.Join(args, " "))
	}

	opts := search.Options{SearchTerm: text}
	opts.Category, _ = f.GetString("type")
	opts.Faction, _ = f.GetString("clan")
	opts.Keywords, _ = f.GetStringSlice("keyword")

	for _, a := range card.Attributes {
		lo, hi := opts.Bounds(a)
		for _, bound := range []struct {
			flag string
			dst  **int
		}{{a.String() + "-min", lo}, {a.String() + "-max", hi}} {
			if !f.Changed(bound.flag) {
				continue
			}
			v, err := f.GetInt(bound.flag)
			if err != nil {
				return search.Options{}, err
			}
			*bound.dst = &v
		}
	}
	return opts, nil
}

// printCardLine prints a one-line card summary
func printCardLine(c *card.Card) {
	var stats []string
	for _, a := range card.Attributes {
		if v, ok := c.Stats.Get(a); ok {
			stats = append(stats, fmt.Sprintf("%s %d", a, v))
		}
	}

	line := color.HiWhiteString("%s", c.DisplayName()) + " " + color.CyanString("[%s]", c.Category)
	if c.Faction != "" {
		line += " " + color.YellowString("%s", c.Faction)
	}
	if len(stats) > 0 {
		line += " " + strings.Join(stats, ", ")
	}
	if c.Banned {
		line += " " + color.RedString("banned")
	}
	fmt.Println(line)
}

// printValues lists the distinct values of a card field
func printValues(cat *catalog.Catalog, name string) error {
	field, err := catalog.ParseField(name)
	if err != nil {
		return err
	}
	values, err := cat.UniqueValues(field)
	if err != nil {
		return err
	}
	for _, v := range values {
		fmt.Println(v)
	}
	return nil
}
