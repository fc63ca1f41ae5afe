package cmd

import (
	"github.com/ctskennerton/crisprtools/internal/crispr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// extractCmd is for writing sequences to FASTA.
var extractCmd = &cobra.Command{
	Use:   "extract [file.crispr]",
	Short: "Write the repeats, spacers and flankers of groups to FASTA",
	Long: `Write the repeats, spacers and flankers of groups to FASTA

Each record is named after its group and id, eg "G1_Sp3". Without -s, -d or -f
all three are written. -x and -y split the output into a file per group and/or
per type, in the directory of -o or the working directory.`,
	RunE:                       crispr.ExtractCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  crisprtools extract -s -x -o spacers sample.crispr",
}

func init() {
	extractCmd.Flags().StringSliceP("groups", "g", nil, groupsHelp)
	extractCmd.Flags().BoolP("spacers", "s", false, "extract spacers")
	extractCmd.Flags().BoolP("repeats", "d", false, "extract direct repeats")
	extractCmd.Flags().BoolP("flankers", "f", false, "extract flankers")
	extractCmd.Flags().BoolP("split-group", "x", false, "a file per group")
	extractCmd.Flags().BoolP("split-type", "y", false, "a file per type of sequence")
	extractCmd.Flags().StringP("out", "o", "", "output directory (default is stdout, or the working directory when split)")
	extractCmd.Flags().Int("width", 60, "line width of FASTA sequences")
	viper.BindPFlag("extract.width", extractCmd.Flags().Lookup("width"))

	rootCmd.AddCommand(extractCmd)
}
