package cmd

import (
	"github.com/ctskennerton/crisprtools/internal/crispr"
	"github.com/spf13/cobra"
)

// sanitiseCmd is for renumbering the ids of a .crispr file.
var sanitiseCmd = &cobra.Command{
	Use:   "sanitise [file.crispr]",
	Short: "Renumber the ids of groups, repeats, spacers, flankers and contigs",
	Long: `Renumber the ids of groups, repeats, spacers, flankers and contigs

Repeats, spacers, flankers and contigs are renumbered from 1 within each group
and every reference to them in the assembly is updated to match. Groups are
renumbered across the file. Without -o the input file is overwritten.`,
	RunE:                       crispr.SanitiseCmd,
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"sanitize"},
	Example:                    "  crisprtools sanitise -s -d -o clean.crispr sample.crispr",
}

func init() {
	sanitiseCmd.Flags().BoolP("all", "a", false, "renumber everything")
	sanitiseCmd.Flags().BoolP("spacers", "s", false, "renumber spacers")
	sanitiseCmd.Flags().BoolP("repeats", "d", false, "renumber direct repeats")
	sanitiseCmd.Flags().BoolP("flankers", "f", false, "renumber flankers")
	sanitiseCmd.Flags().BoolP("contigs", "c", false, "renumber contigs")
	sanitiseCmd.Flags().Bool("groups", false, "renumber groups")
	sanitiseCmd.Flags().StringP("out", "o", "", "output file name (default is the input file)")

	rootCmd.AddCommand(sanitiseCmd)
}
