package cmd

import (
	"github.com/ctskennerton/crisprtools/internal/crispr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mergeCmd is for combining the groups of multiple .crispr files.
var mergeCmd = &cobra.Command{
	Use:   "merge [file.crispr]...",
	Short: "Merge the groups of two or more .crispr files into one",
	Long: `Merge the groups of two or more .crispr files into one

Groups are copied in the order of the files passed. By default a group whose id
was already seen is skipped with a warning. With -s every group is renumbered
G1, G2, ... in the merged file so none are lost.`,
	RunE:                       crispr.MergeCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  crisprtools merge -s -o all.crispr sample1.crispr sample2.crispr",
}

func init() {
	mergeCmd.Flags().BoolP("sanitise", "s", false, "renumber the group ids of the merged file")
	mergeCmd.Flags().StringP("out", "o", "crisprtools_merged.crispr", "output file name")
	viper.BindPFlag("merge.output", mergeCmd.Flags().Lookup("out"))

	rootCmd.AddCommand(mergeCmd)
}
