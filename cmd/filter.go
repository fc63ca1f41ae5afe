package cmd

import (
	"github.com/ctskennerton/crisprtools/internal/crispr"
	"github.com/spf13/cobra"
)

// filterCmd is for removing groups that are too small.
var filterCmd = &cobra.Command{
	Use:   "filter [file.crispr]",
	Short: "Remove groups with too few spacers, repeats, flankers or contigs",
	Long: `Remove groups with too few spacers, repeats, flankers or contigs

A group is kept only if it has at least as many of each element as its
threshold. A threshold of 0 isn't checked. Without -o the input file is
overwritten.`,
	RunE:                       crispr.FilterCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  crisprtools filter -s 3 -o big.crispr sample.crispr",
}

func init() {
	filterCmd.Flags().IntP("spacers", "s", 0, "minimum number of spacers")
	filterCmd.Flags().IntP("repeats", "d", 0, "minimum number of direct repeats")
	filterCmd.Flags().IntP("flankers", "f", 0, "minimum number of flankers")
	filterCmd.Flags().IntP("contigs", "c", 0, "minimum number of contigs")
	filterCmd.Flags().StringP("out", "o", "", "output file name (default is the input file)")

	rootCmd.AddCommand(filterCmd)
}
