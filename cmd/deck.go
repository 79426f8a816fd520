package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kakita-works/shugenja/internal/card"
	"github.com/kakita-works/shugenja/internal/catalog"
	"github.com/kakita-works/shugenja/internal/deck"
	"github.com/kakita-works/shugenja/internal/deckfmt"
	"github.com/kakita-works/shugenja/internal/library"
	"github.com/kakita-works/shugenja/internal/validator"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage decks in your deck library",
	Long: `Commands for building and managing decks in your deck library.
Decks are stored as text deck lists under $XDG_DATA_HOME/shugenja/decks.

Commands that work on a single deck use --deck, or the default deck when
--deck is not given.`,
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := deckLibrary()
		if err := lib.Init(); err != nil {
			return err
		}

		fmt.Println("Deck library initialized at:", lib.Dir)
		fmt.Println("Config file at:", cfg.Path())
		return nil
	},
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := deckLibrary()
		names, err := lib.List()
		if err != nil {
			return err
		}

		if len(names) == 0 {
			fmt.Println("No decks found in your deck library.")
			fmt.Println("Create one with 'shugenja deck new <name>' or 'shugenja deck import <name> <file>'.")
			return nil
		}

		for _, name := range names {
			if name == cfg.DefaultDeck {
				fmt.Printf("* %s [DEFAULT]\n", name)
			} else {
				fmt.Printf("  %s\n", name)
			}
		}
		return nil
	},
}

// deckNewCmd represents the deck new command
var deckNewCmd = &cobra.Command{
	Use:   "new [deck_name]",
	Short: "Create an empty deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := deckLibrary()
		if lib.Exists(args[0]) {
			return fmt.Errorf("deck %q already exists", args[0])
		}
		if err := lib.Save(args[0], deck.New(cfg.DeckRules())); err != nil {
			return err
		}

		fmt.Printf("Created deck %s\n", args[0])
		if cfg.DefaultDeck == "" {
			return setDefaultDeck(args[0])
		}
		return nil
	},
}

// deckAddCmd represents the deck add command
var deckAddCmd = &cobra.Command{
	Use:   "add [card name]",
	Short: "Add copies of a card to a deck",
	Long: `Add puts copies of a card into the deck, one at a time, under the deck
rules: a Unique card is added once and other cards stop at the copy limit.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		return editDeck(cmd, strings.Join(args, " "), func(d deck.Deck, c *card.Card) (deck.Deck, int) {
			added := 0
			for i := 0; i < count; i++ {
				next := d.Add(c)
				if next.CountOf(c.ID) == d.CountOf(c.ID) {
					break
				}
				d = next
				added++
			}
			if added < count {
				color.Yellow("Only %d of %d copies added: %s is at its limit", added, count, c.DisplayName())
			}
			return d, added
		})
	},
}

// deckRemoveCmd represents the deck rm command
var deckRemoveCmd = &cobra.Command{
	Use:   "rm [card name]",
	Short: "Remove copies of a card from a deck",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		return editDeck(cmd, strings.Join(args, " "), func(d deck.Deck, c *card.Card) (deck.Deck, int) {
			removed := 0
			for i := 0; i < count && d.CountOf(c.ID) > 0; i++ {
				d = d.Remove(c.ID)
				removed++
			}
			return d, -removed
		})
	},
}

// editDeck loads a deck, applies a change for one card and saves the result
func editDeck(cmd *cobra.Command, cardName string, change func(deck.Deck, *card.Card) (deck.Deck, int)) error {
	flagDeck, _ := cmd.Flags().GetString("deck")
	name, err := deckName(flagDeck)
	if err != nil {
		return err
	}

	cat := loadCatalog()
	c, ok := cat.FindByName(cardName)
	if !ok {
		return fmt.Errorf("%w: %s", catalog.ErrCardNotFound, cardName)
	}

	force, _ := cmd.Flags().GetBool("force")
	delta := 0
	d, res, err := deckLibrary().Edit(name, newImporter(cat), force, func(d deck.Deck) deck.Deck {
		d, delta = change(d, c)
		return d
	})
	if errors.Is(err, library.ErrUnresolvedCards) {
		printImportReport(res)
		return fmt.Errorf("%w; saving would drop them, use --force to save anyway", err)
	}
	if err != nil {
		return err
	}
	if force && len(res.MissingCards) > 0 {
		color.Yellow("Dropped %d unresolved card line(s) from %s", len(res.MissingCards), name)
	}

	switch {
	case delta > 0:
		fmt.Printf("Added %d × %s to %s (%d in deck)\n", delta, c.DisplayName(), name, d.CountOf(c.ID))
	case delta < 0:
		fmt.Printf("Removed %d × %s from %s (%d in deck)\n", -delta, c.DisplayName(), name, d.CountOf(c.ID))
	default:
		fmt.Printf("%s unchanged\n", name)
	}
	printSummary(d)
	return nil
}

// deckClearCmd represents the deck clear command
var deckClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every card from a deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		flagDeck, _ := cmd.Flags().GetString("deck")
		name, err := deckName(flagDeck)
		if err != nil {
			return err
		}

		lib := deckLibrary()
		if !lib.Exists(name) {
			return fmt.Errorf("%w: %s", library.ErrDeckNotFound, name)
		}
		if err := lib.Save(name, deck.New(cfg.DeckRules())); err != nil {
			return err
		}
		fmt.Printf("Cleared deck %s\n", name)
		return nil
	},
}

// deckShowCmd represents the deck show command
var deckShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a deck grouped by section with its validation status",
	RunE: func(cmd *cobra.Command, args []string) error {
		flagDeck, _ := cmd.Flags().GetString("deck")
		name, err := deckName(flagDeck)
		if err != nil {
			return err
		}

		res, err := deckLibrary().Load(name, newImporter(loadCatalog()))
		if err != nil {
			return err
		}

		color.New(color.FgHiWhite, color.Bold).Printf("%s\n\n", name)
		printGroups(res.Deck)
		printImportReport(res)
		printValidation(name, validator.NewValidator(cfg.DeckRules(), cfg.ValidatorFormat()).Validate(res.Deck))
		return nil
	},
}

// deckExportCmd represents the deck export command
var deckExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a deck in the shared text format",
	RunE: func(cmd *cobra.Command, args []string) error {
		flagDeck, _ := cmd.Flags().GetString("deck")
		output, _ := cmd.Flags().GetString("output")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		name, err := deckName(flagDeck)
		if err != nil {
			return err
		}
		res, err := deckLibrary().Load(name, newImporter(loadCatalog()))
		if err != nil {
			return err
		}

		var data []byte
		if asYAML {
			data, err = deckfmt.ExportYAML(name, res.Deck)
			if err != nil {
				return err
			}
		} else {
			data = []byte(deckfmt.Export(res.Deck))
		}

		if output == "" || output == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("error writing deck: %w", err)
		}
		fmt.Printf("Exported %s to %s\n", name, output)
		return nil
	},
}

// deckImportCmd represents the deck import command
var deckImportCmd = &cobra.Command{
	Use:   "import [deck_name] [file|-]",
	Short: "Import a deck list into the library",
	Long: `Import reads a deck list in the shared text format, resolves every line
against the catalog and saves the result in the library. Lines naming cards
that are not in the catalog are reported and left out.

With --yaml the file is a YAML deck file; every deck in it is imported under
its own name and deck_name is ignored.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")
		force, _ := cmd.Flags().GetBool("force")

		data, err := readInput(args[1])
		if err != nil {
			return err
		}

		im := newImporter(loadCatalog())
		var results []deckfmt.NamedResult
		if asYAML {
			results, err = im.ImportYAML(data)
		} else {
			var res *deckfmt.Result
			res, err = im.ImportString(string(data))
			results = []deckfmt.NamedResult{{Name: args[0], Result: res}}
		}
		if err != nil {
			return fmt.Errorf("error reading deck: %w", err)
		}

		lib := deckLibrary()
		for _, res := range results {
			if lib.Exists(res.Name) && !force {
				return fmt.Errorf("deck %q already exists (use --force to replace it)", res.Name)
			}
			printImportReport(res.Result)
			if err := lib.Save(res.Name, res.Deck); err != nil {
				return err
			}
			fmt.Printf("Imported %s: %d cards\n", res.Name, res.Deck.Total())
		}
		return nil
	},
}

// deckDeleteCmd represents the deck delete command
var deckDeleteCmd = &cobra.Command{
	Use:   "delete [deck_name]",
	Short: "Delete a deck from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := deckLibrary().Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted deck %s\n", args[0])
		if cfg.DefaultDeck == args[0] {
			return setDefaultDeck("")
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deckLibrary().Exists(args[0]) {
			return fmt.Errorf("%w: %s", library.ErrDeckNotFound, args[0])
		}
		if err := setDefaultDeck(args[0]); err != nil {
			return err
		}
		fmt.Printf("Default deck set to: %s\n", args[0])
		return nil
	},
}

// setDefaultDeck updates the loaded config and writes it back
func setDefaultDeck(name string) error {
	cfg.DefaultDeck = name
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("error setting default deck: %w", err)
	}
	return nil
}

// printGroups lists the deck by section
func printGroups(d deck.Deck) {
	heading := color.New(color.FgCyan, color.Bold)
	sub := color.New(color.FgCyan)

	g := d.Group()
	printEntries := func(entries []deck.Entry) {
		for _, e := range entries {
			name := e.Card.DisplayName()
			if e.Card.Banned {
				name = color.RedString("%s (banned)", name)
			}
			fmt.Printf("  %d %s\n", e.Quantity, name)
		}
	}

	if len(g.Stronghold) > 0 {
		heading.Println("Stronghold")
		printEntries(g.Stronghold)
	}
	if len(g.Sensei) > 0 {
		heading.Println("Sensei")
		printEntries(g.Sensei)
	}
	for _, part := range []struct {
		title    string
		count    int
		sections []deck.Section
	}{
		{"Dynasty", d.DynastyCount(), g.Dynasty},
		{"Fate", d.FateCount(), g.Fate},
	} {
		if len(part.sections) == 0 {
			continue
		}
		heading.Printf("%s (%d)\n", part.title, part.count)
		for _, s := range part.sections {
			sub.Printf(" %s (%d)\n", s.Title(), s.Count())
			printEntries(s.Entries)
		}
	}
	fmt.Println()
}

// printSummary prints the deck totals on one line
func printSummary(d deck.Deck) {
	rules := d.Rules()
	fmt.Printf("Dynasty %d/%d · Fate %d/%d · Stronghold %d\n",
		d.DynastyCount(), rules.MinDynasty, d.FateCount(), rules.MinFate,
		d.CategoryCount(card.CategoryStronghold))
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckInitCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckNewCmd)
	deckCmd.AddCommand(deckAddCmd)
	deckCmd.AddCommand(deckRemoveCmd)
	deckCmd.AddCommand(deckClearCmd)
	deckCmd.AddCommand(deckShowCmd)
	deckCmd.AddCommand(deckExportCmd)
	deckCmd.AddCommand(deckImportCmd)
	deckCmd.AddCommand(deckDeleteCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)

	for _, c := range []*cobra.Command{deckAddCmd, deckRemoveCmd, deckClearCmd, deckShowCmd, deckExportCmd} {
		c.Flags().StringP("deck", "d", "", "deck to work on (default: the default deck)")
	}
	deckAddCmd.Flags().IntP("count", "n", 1, "number of copies")
	deckRemoveCmd.Flags().IntP("count", "n", 1, "number of copies")
	deckAddCmd.Flags().Bool("force", false, "save even if cards in the deck are missing from the catalog")
	deckRemoveCmd.Flags().Bool("force", false, "save even if cards in the deck are missing from the catalog")
	deckExportCmd.Flags().StringP("output", "o", "", "output file (default: standard output)")
	deckExportCmd.Flags().Bool("yaml", false, "write a YAML deck file")
	deckImportCmd.Flags().Bool("yaml", false, "read a YAML deck file")
	deckImportCmd.Flags().BoolP("force", "f", false, "replace existing decks")
}
