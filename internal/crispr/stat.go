package crispr

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Markers are the characters drawn, one per element, in a group's summary line.
type Markers struct {
	Repeat  string `mapstructure:"repeat"`
	Spacer  string `mapstructure:"spacer"`
	Flanker string `mapstructure:"flanker"`
}

// Distribution describes a list of lengths or coverages.
type Distribution struct {
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

// describe a list of values. All zeros if it's empty.
func describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	d := Distribution{
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		d.StdDev = stat.StdDev(sorted, nil)
	}
	return d
}

// GroupStats are the counts, lengths and coverages of one group.
type GroupStats struct {
	ID        string `json:"gid" yaml:"gid"`
	Consensus string `json:"consensus" yaml:"consensus"`

	Repeats  int `json:"repeats" yaml:"repeats"`
	Spacers  int `json:"spacers" yaml:"spacers"`
	Flankers int `json:"flankers" yaml:"flankers"`
	Contigs  int `json:"contigs,omitempty" yaml:"contigs,omitempty"`

	// MissingCoverage is the number of spacers without a usable coverage
	MissingCoverage int `json:"missing_coverage" yaml:"missing_coverage"`

	RepeatLength  Distribution `json:"repeat_length" yaml:"repeat_length"`
	SpacerLength  Distribution `json:"spacer_length" yaml:"spacer_length"`
	FlankerLength Distribution `json:"flanker_length" yaml:"flanker_length"`
	Coverage      Distribution `json:"coverage" yaml:"coverage"`

	// per element lengths and coverages, in document order
	RepeatLengths  []int     `json:"-" yaml:"-"`
	SpacerLengths  []int     `json:"-" yaml:"-"`
	FlankerLengths []int     `json:"-" yaml:"-"`
	SpacerCoverage []float64 `json:"-" yaml:"-"`
}

// StatCmd is for printing a summary of each group in a .crispr file.
func StatCmd(cmd *cobra.Command, args []string) error {
	flags, conf, err := parseStatFlags(cmd, args)
	if err != nil {
		return err
	}

	doc, err := Read(flags.in)
	if err != nil {
		return err
	}

	stats, err := CollectStats(doc, flags.groups, flags.assembly)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if flags.out != "" {
		f, err := os.Create(flags.out)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", flags.out)
		}
		defer f.Close()
		out = f
	}

	return WriteStats(out, stats, StatFormat{
		Format:   flags.format,
		Pretty:   flags.pretty,
		Assembly: flags.assembly,
		Markers:  conf.markers,
	})
}

// CollectStats gathers the stats of each selected group in one pass over its data.
func CollectStats(d *Document, sel Selector, assembly bool) (stats []*GroupStats, err error) {
	stats = []*GroupStats{}
	err = ForEachGroup(d, sel, func(g *Group) error {
		s := groupStats(g, assembly)
		stats = append(stats, s)
		return nil
	})
	return
}

// groupStats counts and measures the elements of one group.
func groupStats(g *Group, assembly bool) *GroupStats {
	s := &GroupStats{ID: g.label()}
	s.Consensus, _ = g.Consensus()

	if data := g.Data(); data != nil {
		for _, dr := range data.Repeats() {
			s.Repeats++
			s.RepeatLengths = append(s.RepeatLengths, seqLength(dr))
		}

		for _, sp := range data.Spacers() {
			s.Spacers++
			s.SpacerLengths = append(s.SpacerLengths, seqLength(sp))

			cov, ok, err := sp.Coverage()
			if err == nil && !ok {
				id, _ := sp.ID()
				err = newError(DataError, id, "spacer has no coverage")
			}
			if err != nil {
				s.MissingCoverage++
				stderr.WithField("group", s.ID).Warn(err)
				continue
			}
			s.SpacerCoverage = append(s.SpacerCoverage, cov)
		}

		for _, fl := range data.Flankers() {
			s.Flankers++
			s.FlankerLengths = append(s.FlankerLengths, seqLength(fl))
		}
	}

	if assembly {
		if asm := g.Assembly(); asm != nil {
			s.Contigs = len(asm.Contigs())
		}
	}

	s.RepeatLength = describe(toFloats(s.RepeatLengths))
	s.SpacerLength = describe(toFloats(s.SpacerLengths))
	s.FlankerLength = describe(toFloats(s.FlankerLengths))
	s.Coverage = describe(s.SpacerCoverage)

	stderr.WithFields(logrus.Fields{
		"group":    s.ID,
		"repeats":  s.Repeats,
		"spacers":  s.Spacers,
		"flankers": s.Flankers,
	}).Debug("counted")

	return s
}

func seqLength(l *Leaf) int {
	seq, _ := l.Seq()
	return len(seq)
}

func toFloats(ints []int) []float64 {
	fs := make([]float64, len(ints))
	for i, v := range ints {
		fs[i] = float64(v)
	}
	return fs
}

// StatFormat is how stats are written.
type StatFormat struct {
	// Format is one of text, json or yaml
	Format string

	// Pretty aligns and colors the text format
	Pretty bool

	// Assembly adds contig counts to the text format
	Assembly bool

	Markers Markers
}

// WriteStats writes each group's stats to w.
//
// In the text formats each group is one line ending in its repeat, spacer and
// flanker counts.
func WriteStats(w io.Writer, stats []*GroupStats, f StatFormat) error {
	switch strings.ToLower(f.Format) {
	case "", "text":
		if f.Pretty {
			return writePrettyStats(w, stats, f)
		}
		return writeTextStats(w, stats, f)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(stats), "failed to write json stats")
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(stats); err != nil {
			return errors.Wrap(err, "failed to write yaml stats")
		}
		return enc.Close()
	}

	return newError(InputError, "", "unknown stat format %q, use text, json or yaml", f.Format)
}

// counts is the trailing "repeats spacers flankers" of a summary line.
func counts(s *GroupStats) string {
	return fmt.Sprintf("%d %d %d", s.Repeats, s.Spacers, s.Flankers)
}

func writeTextStats(w io.Writer, stats []*GroupStats, f StatFormat) error {
	for _, s := range stats {
		markers := strings.Repeat(f.Markers.Repeat, s.Repeats) +
			strings.Repeat(f.Markers.Spacer, s.Spacers) +
			strings.Repeat(f.Markers.Flanker, s.Flankers)

		line := fmt.Sprintf("%s | %s | %s | ", s.ID, s.Consensus, markers)
		if f.Assembly {
			line += fmt.Sprintf("%d | ", s.Contigs)
		}

		if _, err := fmt.Fprintln(w, line+counts(s)); err != nil {
			return errors.Wrap(err, "failed to write stats")
		}
	}
	return nil
}

func writePrettyStats(w io.Writer, stats []*GroupStats, f StatFormat) error {
	repeat := color.New(color.FgRed).SprintFunc()
	spacer := color.New(color.FgBlue).SprintFunc()
	flanker := color.New(color.FgGreen).SprintFunc()

	tw := tabwriter.NewWriter(w, 0, 4, 3, ' ', 0)
	header := "gid\tconsensus\tarray\tspacer len\tcoverage\t"
	if f.Assembly {
		header += "contigs\t"
	}
	fmt.Fprintln(tw, header+"dr sp fl")

	for _, s := range stats {
		row := fmt.Sprintf(
			"%s\t%s\t%s%s%s\t%.1f\t%.1f\t",
			s.ID,
			s.Consensus,
			repeat(strings.Repeat(f.Markers.Repeat, s.Repeats)),
			spacer(strings.Repeat(f.Markers.Spacer, s.Spacers)),
			flanker(strings.Repeat(f.Markers.Flanker, s.Flankers)),
			s.SpacerLength.Mean,
			s.Coverage.Mean,
		)
		if f.Assembly {
			row += fmt.Sprintf("%d\t", s.Contigs)
		}
		fmt.Fprintln(tw, row+counts(s))
	}

	return errors.Wrap(tw.Flush(), "failed to write stats")
}
