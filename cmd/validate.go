package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kakita-works/shugenja/internal/deckfmt"
	"github.com/kakita-works/shugenja/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file|-]",
	Short: "Validate a deck list",
	Long: `Validate imports a deck list in the shared text format (or a YAML deck file
with --yaml) and checks it against the configured format rules: deck sizes,
a single Stronghold, at most one Sensei and copy limits. Cards that cannot be
found in the catalog and banned cards are reported as well.

Use '-' to read the deck list from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asYAML, _ := cmd.Flags().GetBool("yaml")

		data, err := readInput(args[0])
		if err != nil {
			return err
		}

		im := newImporter(loadCatalog())
		v := validator.NewValidator(cfg.DeckRules(), cfg.ValidatorFormat())

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

		failed := 0
		for _, res := range results {
			printImportReport(res.Result)
			if !printValidation(res.Name, v.Validate(res.Deck)) {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Bool("yaml", false, "read a YAML deck file")
}

// readInput reads a file, or standard input for "-"
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading standard input: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading deck file: %w", err)
	}
	return data, nil
}

// printImportReport lists the deck lines that did not resolve cleanly
func printImportReport(res *deckfmt.Result) {
	yellow := color.New(color.FgYellow)

	if len(res.MissingCards) > 0 {
		yellow.Printf("%d card(s) not found in the catalog:\n", len(res.MissingCards))
		for _, m := range res.MissingCards {
			fmt.Printf("  %d %s\n", m.Quantity, m.Name)
		}
	}
	if len(res.BannedCards) > 0 {
		yellow.Printf("%d banned card(s):\n", len(res.BannedCards))
		for _, b := range res.BannedCards {
			fmt.Printf("  %d %s (%s)\n", b.Quantity, b.Name, b.Reason)
		}
	}
	if res.Skipped > 0 {
		yellow.Printf("%d line(s) could not be read and were ignored\n", res.Skipped)
	}
}

// printValidation displays validation results and reports whether the deck is valid
func printValidation(name string, results validator.ValidationResults) bool {
	fmt.Println("Validation Results:")
	fmt.Println("-------------------")
	fmt.Printf("Stronghold: %d  Sensei: %d  Dynasty: %d  Fate: %d\n",
		results.StrongholdCount, results.SenseiCount, results.DynastyCount, results.FateCount)

	if results.Valid {
		color.Green("✅ Deck '%s' is valid.", name)
	} else {
		color.Red("❌ Deck '%s' has %d validation errors:", name, len(results.Errors))
		for i, err := range results.Errors {
			fmt.Printf("%d. %s\n", i+1, err)
		}
	}

	if len(results.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for i, warn := range results.Warnings {
			fmt.Printf("%d. %s\n", i+1, warn)
		}
	}
	fmt.Println()

	return results.Valid
}
