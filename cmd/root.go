// Package cmd is for command line interactions with the crisprtools application
package cmd

import (
	"io"
	"os"

	"github.com/ctskennerton/crisprtools/config"
	"github.com/ctskennerton/crisprtools/internal/crispr"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "crisprtools",
	Short: "Manipulate, summarize and draw .crispr files of assembled CRISPR arrays",
	Long: `Manipulate, summarize and draw .crispr files of assembled CRISPR arrays

A .crispr file groups the direct repeats, spacers and flankers of each CRISPR
locus, with an optional assembly of contigs linking the spacers together.
crisprtools merges these files, renumbers their ids, filters out small groups,
extracts sequences to FASTA, prints summaries and renders spacer graphs.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		crispr.SetVerbose(viper.GetBool("verbose"))
		return config.ReadSettings(viper.GetViper(), viper.GetString("settings"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command line in args and returns the exit status. Failures
// are written to w as a single line, followed by usage if the command was
// called wrong.
func run(args []string, w io.Writer) int {
	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return 0
	}

	color.New(color.FgRed).Fprintln(w, err)
	if crispr.KindOf(err) == crispr.InputError {
		cmd.SetOut(w)
		cmd.Usage()
	}
	return crispr.ExitCode(err)
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return crispr.UsageError(err)
	})

	// settings is an optional settings file that overrides the defaults in config
	rootCmd.PersistentFlags().String("settings", "", "settings file (default is $HOME/.config/crisprtools/crisprtools.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log each step to stderr")
	viper.BindPFlag("settings", rootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// groupsHelp is the help text of the -g flag shared by several commands.
const groupsHelp = "comma separated list of group ids, with or without the G (default is every group)"
