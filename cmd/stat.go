package cmd

import (
	"github.com/ctskennerton/crisprtools/internal/crispr"
	"github.com/spf13/cobra"
)

// statCmd is for summarizing the groups of a .crispr file.
var statCmd = &cobra.Command{
	Use:   "stat [file.crispr]",
	Short: "Print a summary of each group",
	Long: `Print a summary of each group

Each group is one line with its id, consensus repeat, a marker per repeat,
spacer and flanker, and the number of repeats, spacers and flankers:

  G1 | GTTTCAATCC | ##---~ | 2 3 1

With --format json or yaml, lengths and coverages are summarized too.`,
	RunE:                       crispr.StatCmd,
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"stats"},
	Example:                    "  crisprtools stat -p -g 1,2 sample.crispr",
}

func init() {
	statCmd.Flags().StringSliceP("groups", "g", nil, groupsHelp)
	statCmd.Flags().BoolP("pretty", "p", false, "align and color the summary")
	statCmd.Flags().BoolP("assembly", "a", false, "include the number of contigs")
	statCmd.Flags().String("format", "text", "output format: text, json or yaml")
	statCmd.Flags().StringP("out", "o", "", "output file name (default is stdout)")

	rootCmd.AddCommand(statCmd)
}
