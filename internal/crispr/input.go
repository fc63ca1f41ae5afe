package crispr

import (
	"github.com/ctskennerton/crisprtools/config"
	"github.com/spf13/cobra"
)

// settings are those from config that the commands need.
type settings struct {
	prefixes    Prefixes
	markers     Markers
	fastaWidth  int
	mergeOutput string
	draw        DrawOptions
	drawOutput  string
	graphviz    string
}

// newSettings converts the viper backed config.
func newSettings() (*settings, error) {
	c, err := config.New()
	if err != nil {
		return nil, newError(InputError, "", "%v", err)
	}

	return &settings{
		prefixes:    Prefixes(c.Prefix),
		markers:     Markers(c.Stat.Markers),
		fastaWidth:  c.Extract.Width,
		mergeOutput: c.Merge.Output,
		draw: DrawOptions{
			Palette:   c.Draw.Palette,
			Algorithm: c.Draw.Algorithm,
			Format:    c.Draw.Format,
			Bins:      c.Draw.Bins,
		},
		drawOutput: c.Draw.Output,
		graphviz:   c.Draw.Graphviz,
	}, nil
}

// inputParser contains methods for parsing flags from the input &cobra.Command.
type inputParser struct {
	cmd *cobra.Command
	err error
}

// getBool returns the named flag. The first failure is kept in p.err.
func (p *inputParser) getBool(name string) bool {
	v, err := p.cmd.Flags().GetBool(name)
	p.keep(name, err)
	return v
}

func (p *inputParser) getInt(name string) int {
	v, err := p.cmd.Flags().GetInt(name)
	p.keep(name, err)
	return v
}

func (p *inputParser) getString(name string) string {
	v, err := p.cmd.Flags().GetString(name)
	p.keep(name, err)
	return v
}

func (p *inputParser) keep(name string, err error) {
	if err != nil && p.err == nil {
		p.err = newError(InputError, "", "failed to parse %s flag: %v", name, err)
	}
}

// groups parses the comma separated "groups" flag. Empty means every group.
func (p *inputParser) groups() Selector {
	ids, err := p.cmd.Flags().GetStringSlice("groups")
	p.keep("groups", err)
	if len(ids) == 0 {
		return AllGroups
	}
	return GroupSet(ids)
}

// input is the one input file passed as an argument.
func input(args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", newError(InputError, "", "No input file provided")
	}
	if len(args) > 1 {
		return "", newError(InputError, "", "expected one input file, got %d", len(args))
	}
	return args[0], nil
}

// sanitiseFlags are the parsed flags of the sanitise command.
type sanitiseFlags struct {
	in   string
	out  string
	opts SanitiseOptions
}

// parseSanitiseFlags gathers the options of sanitise. Without an output
// file the input file is overwritten.
func parseSanitiseFlags(cmd *cobra.Command, args []string) (*sanitiseFlags, *settings, error) {
	in, err := input(args)
	if err != nil {
		return nil, nil, err
	}

	p := &inputParser{cmd: cmd}
	fs := &sanitiseFlags{in: in, out: p.getString("out")}
	if fs.out == "" {
		fs.out = in
	}

	if p.getBool("all") {
		fs.opts = SanitiseOptions{Groups: true, Repeats: true, Spacers: true, Flankers: true, Contigs: true}
	} else {
		fs.opts = SanitiseOptions{
			Groups:   p.getBool("groups"),
			Repeats:  p.getBool("repeats"),
			Spacers:  p.getBool("spacers"),
			Flankers: p.getBool("flankers"),
			Contigs:  p.getBool("contigs"),
		}
	}
	if p.err != nil {
		return nil, nil, p.err
	}

	conf, err := newSettings()
	return fs, conf, err
}

// mergeFlags are the parsed flags of the merge command.
type mergeFlags struct {
	ins      []string
	out      string
	sanitise bool
}

// parseMergeFlags gathers the files to merge. Without an output file the
// merged document goes to the merge.output setting.
func parseMergeFlags(cmd *cobra.Command, args []string) (*mergeFlags, *settings, error) {
	if len(args) == 0 {
		return nil, nil, newError(InputError, "", "No input file provided")
	}

	p := &inputParser{cmd: cmd}
	fs := &mergeFlags{ins: args, sanitise: p.getBool("sanitise")}
	if p.err != nil {
		return nil, nil, p.err
	}

	conf, err := newSettings()
	if err != nil {
		return nil, nil, err
	}
	fs.out = conf.mergeOutput
	return fs, conf, nil
}

// filterFlags are the parsed flags of the filter command.
type filterFlags struct {
	in         string
	out        string
	thresholds Thresholds
}

// parseFilterFlags gathers the thresholds of filter. Without an output file
// the input file is overwritten.
func parseFilterFlags(cmd *cobra.Command, args []string) (*filterFlags, error) {
	in, err := input(args)
	if err != nil {
		return nil, err
	}

	p := &inputParser{cmd: cmd}
	fs := &filterFlags{
		in:  in,
		out: p.getString("out"),
		thresholds: Thresholds{
			Spacers:  p.getInt("spacers"),
			Repeats:  p.getInt("repeats"),
			Flankers: p.getInt("flankers"),
			Contigs:  p.getInt("contigs"),
		},
	}
	if p.err != nil {
		return nil, p.err
	}

	t := fs.thresholds
	if t.Spacers < 0 || t.Repeats < 0 || t.Flankers < 0 || t.Contigs < 0 {
		return nil, newError(InputError, "", "thresholds can't be negative")
	}
	if fs.out == "" {
		fs.out = in
	}
	return fs, nil
}

// statFlags are the parsed flags of the stat command.
type statFlags struct {
	in       string
	out      string
	format   string
	groups   Selector
	pretty   bool
	assembly bool
}

func parseStatFlags(cmd *cobra.Command, args []string) (*statFlags, *settings, error) {
	in, err := input(args)
	if err != nil {
		return nil, nil, err
	}

	p := &inputParser{cmd: cmd}
	fs := &statFlags{
		in:       in,
		out:      p.getString("out"),
		format:   p.getString("format"),
		groups:   p.groups(),
		pretty:   p.getBool("pretty"),
		assembly: p.getBool("assembly"),
	}
	if p.err != nil {
		return nil, nil, p.err
	}

	conf, err := newSettings()
	return fs, conf, err
}

// extractFlags are the parsed flags of the extract command.
type extractFlags struct {
	in     string
	dir    string
	groups Selector
	opts   ExtractOptions
}

func parseExtractFlags(cmd *cobra.Command, args []string) (*extractFlags, *settings, error) {
	in, err := input(args)
	if err != nil {
		return nil, nil, err
	}

	p := &inputParser{cmd: cmd}
	fs := &extractFlags{
		in:     in,
		dir:    p.getString("out"),
		groups: p.groups(),
		opts: ExtractOptions{
			Repeats:    p.getBool("repeats"),
			Spacers:    p.getBool("spacers"),
			Flankers:   p.getBool("flankers"),
			SplitGroup: p.getBool("split-group"),
			SplitType:  p.getBool("split-type"),
		},
	}
	if p.err != nil {
		return nil, nil, p.err
	}

	conf, err := newSettings()
	return fs, conf, err
}

// drawFlags are the parsed flags of the draw command. The rendering options
// are bound to viper so they come from settings.
type drawFlags struct {
	in     string
	dir    string
	groups Selector
	opts   DrawOptions
}

func parseDrawFlags(cmd *cobra.Command, args []string) (*drawFlags, *settings, error) {
	in, err := input(args)
	if err != nil {
		return nil, nil, err
	}

	p := &inputParser{cmd: cmd}
	fs := &drawFlags{in: in, groups: p.groups()}
	if p.err != nil {
		return nil, nil, p.err
	}

	conf, err := newSettings()
	if err != nil {
		return nil, nil, err
	}
	fs.dir = conf.drawOutput
	fs.opts = conf.draw
	return fs, conf, nil
}
