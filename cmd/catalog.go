package cmd

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kakita-works/shugenja/internal/card"
	"github.com/kakita-works/shugenja/internal/importer"
)

// catalogCmd represents the catalog command group
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Build and inspect the card catalog",
}

// catalogBuildCmd represents the catalog build command
var catalogBuildCmd = &cobra.Command{
	Use:   "build [database.xml]",
	Short: "Build the catalog from the card database XML",
	Long: `Build converts the card database XML into the catalog JSON file. Only cards
legal in the configured format are kept and the configured ban list is
applied. The result is compared with the previous catalog and the added,
removed and changed cards are reported. Running build twice on the same
input produces the same file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		previous, _ := cmd.Flags().GetString("previous")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		allFormats, _ := cmd.Flags().GetBool("all-formats")
		if output == "" {
			output = cfg.CatalogPath
		}

		opts := importer.Options{
			Input:    args[0],
			Output:   output,
			Previous: previous,
			Banned:   cfg.BanList(),
			DryRun:   dryRun,
			Logger:   logger,
		}
		if !allFormats {
			opts.Legal = cfg.Format.Legal
		}

		report, err := importer.Run(cmd.Context(), opts)
		if err != nil {
			return err
		}

		fmt.Printf("Parsed %d cards, kept %d\n", report.Parsed, report.Written)
		if report.Skipped > 0 {
			color.Yellow("Skipped %d records without a name or with an unknown type", report.Skipped)
		}
		if report.Illegal > 0 {
			fmt.Printf("Left out %d cards not legal in %s\n", report.Illegal, cfg.Format.Name)
		}
		if report.Banned > 0 {
			fmt.Printf("Marked %d cards banned\n", report.Banned)
		}

		d := report.Diff
		if d.IsEmpty() {
			fmt.Println("No changes from the previous catalog")
		} else {
			color.Green("+%d added", len(d.Added))
			color.Red("-%d removed", len(d.Removed))
			color.Yellow("~%d changed", len(d.Changed))
			if verbose {
				printIDs("added", d.Added)
				printIDs("removed", d.Removed)
				printIDs("changed", d.Changed)
			}
		}

		if dryRun {
			fmt.Println("Dry run: catalog not written")
		} else {
			fmt.Println("Catalog written to", output)
		}
		return nil
	},
}

func printIDs(label string, ids []string) {
	for _, id := range ids {
		fmt.Printf("  %s %s\n", label, id)
	}
}

// catalogStatsCmd represents the catalog stats command
var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the card catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := loadCatalog()
		cards := cat.Cards()

		byCategory := make(map[card.Category]int)
		byFaction := make(map[string]int)
		banned := 0
		for _, c := range cards {
			byCategory[c.Category]++
			if c.Faction != "" {
				byFaction[c.Faction]++
			}
			if c.Banned {
				banned++
			}
		}

		heading := color.New(color.FgCyan, color.Bold)
		heading.Printf("%d cards in %s\n", cat.Len(), cfg.CatalogPath)

		heading.Println("\nBy type:")
		for _, category := range card.Categories {
			if n := byCategory[category]; n > 0 {
				fmt.Printf("  %-12s %5d\n", category, n)
			}
		}

		heading.Println("\nBy clan:")
		factions := make([]string, 0, len(byFaction))
		for f := range byFaction {
			factions = append(factions, f)
		}
		sort.Strings(factions)
		for _, f := range factions {
			fmt.Printf("  %-12s %5d\n", f, byFaction[f])
		}

		if banned > 0 {
			fmt.Printf("\n%d banned\n", banned)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogBuildCmd)
	catalogCmd.AddCommand(catalogStatsCmd)

	catalogBuildCmd.Flags().StringP("output", "o", "", "catalog file to write (default: catalog_path from config)")
	catalogBuildCmd.Flags().String("previous", "", "snapshot to compare against (default: the output file)")
	catalogBuildCmd.Flags().Bool("dry-run", false, "report changes without writing the catalog")
	catalogBuildCmd.Flags().Bool("all-formats", false, "keep cards from every format")
}
