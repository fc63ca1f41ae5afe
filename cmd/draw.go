package cmd

import (
	"github.com/ctskennerton/crisprtools/internal/crispr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// drawCmd is for rendering spacer graphs with Graphviz.
var drawCmd = &cobra.Command{
	Use:   "draw [file.crispr]",
	Short: "Render a graph of each group's spacers with Graphviz",
	Long: `Render a graph of each group's spacers with Graphviz

Spacers are circles, filled by coverage, and flankers are diamonds. Edges follow
the forward links of the assembly. Each group is written to "<gid>.<format>" in
the output directory. Graphviz must be installed.`,
	RunE:                       crispr.DrawCmd,
	SuggestionsMinimumDistance: 2,
	Example:                    "  crisprtools draw -f png -c blue-red -a neato sample.crispr",
}

func init() {
	drawCmd.Flags().StringSliceP("groups", "g", nil, groupsHelp)
	drawCmd.Flags().StringP("colour", "c", "red-blue", "coverage colors: red-blue, blue-red, red-blue-green or green-blue-red")
	drawCmd.Flags().StringP("algorithm", "a", "dot", "Graphviz layout: dot, neato, fdp, sfdp, twopi or circo")
	drawCmd.Flags().StringP("format", "f", "eps", "image format (see 'dot -T?')")
	drawCmd.Flags().IntP("bins", "b", 20, "number of coverage colors")
	drawCmd.Flags().StringP("out", "o", ".", "output directory")

	viper.BindPFlag("draw.palette", drawCmd.Flags().Lookup("colour"))
	viper.BindPFlag("draw.algorithm", drawCmd.Flags().Lookup("algorithm"))
	viper.BindPFlag("draw.format", drawCmd.Flags().Lookup("format"))
	viper.BindPFlag("draw.bins", drawCmd.Flags().Lookup("bins"))
	viper.BindPFlag("draw.output", drawCmd.Flags().Lookup("out"))

	rootCmd.AddCommand(drawCmd)
}
