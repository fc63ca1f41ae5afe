package crispr

import (
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/emicklei/dot"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// algorithms are the Graphviz layout executables.
var algorithms = map[string]bool{
	"dot":   true,
	"neato": true,
	"fdp":   true,
	"sfdp":  true,
	"twopi": true,
	"circo": true,
}

// DrawOptions are how each group's graph is colored, laid out and rendered.
type DrawOptions struct {
	Palette   string
	Algorithm string
	Format    string
	Bins      int
}

// validate the options before any graph is drawn.
func (o DrawOptions) validate() error {
	if _, err := NewRainbow(o.Palette, o.Bins); err != nil {
		return err
	}
	if !algorithms[o.Algorithm] {
		return newError(InputError, "", "not a known Graphviz rendering algorithm: %q", o.Algorithm)
	}
	if o.Format == "" {
		return newError(InputError, "", "no output format")
	}
	return nil
}

// Renderer lays out a graph and writes the image to path.
type Renderer interface {
	Render(g *dot.Graph, algorithm, format, path string) error
}

// Graphviz renders with the Graphviz executables.
type Graphviz struct {
	// Dir is the directory with the layout executables, empty to use the PATH
	Dir string
}

// Render pipes the graph to the layout executable.
func (gv Graphviz) Render(g *dot.Graph, algorithm, format, path string) error {
	exe := algorithm
	if gv.Dir != "" {
		exe = filepath.Join(gv.Dir, algorithm)
	}

	layoutCmd := exec.Command(exe, "-T"+format, "-o", path)
	layoutCmd.Stdin = strings.NewReader(g.String())

	if output, err := layoutCmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "failed to execute %s to render %s: %s", exe, path, string(output))
	}
	return nil
}

// DrawCmd is for rendering the spacer graph of each group in a .crispr file.
func DrawCmd(cmd *cobra.Command, args []string) error {
	flags, conf, err := parseDrawFlags(cmd, args)
	if err != nil {
		return err
	}

	doc, err := Read(flags.in)
	if err != nil {
		return err
	}

	return Draw(doc, flags.groups, flags.opts, flags.dir, Graphviz{Dir: conf.graphviz})
}

// Draw renders a graph of each selected group to "<dir>/<gid>.<format>".
func Draw(d *Document, sel Selector, opts DrawOptions, dir string, r Renderer) error {
	if err := opts.validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	return ForEachGroup(d, sel, func(g *Group) error {
		graph, err := BuildGraph(g, opts)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, g.label()+"."+opts.Format)
		stderr.WithFields(logrus.Fields{"group": g.label(), "file": path}).Debug("rendering")
		return r.Render(graph, opts.Algorithm, opts.Format, path)
	})
}

// BuildGraph makes the graph of a group's spacers and flankers. Each spacer is
// a circle, filled by its coverage if it has one, and each flanker is a
// diamond. Edges run from each contig spacer to its forward neighbors.
func BuildGraph(g *Group, opts DrawOptions) (*dot.Graph, error) {
	rainbow, err := NewRainbow(opts.Palette, opts.Bins)
	if err != nil {
		return nil, err
	}

	graph := dot.NewGraph(dot.Directed)
	graph.Attr("label", g.label())

	coverage := make(map[string]float64)
	low, high := math.Inf(1), math.Inf(-1)

	if data := g.Data(); data != nil {
		for _, sp := range data.Spacers() {
			id, _ := sp.ID()
			graph.Node(id).Attr("shape", "circle")

			cov, ok, err := sp.Coverage()
			if err != nil {
				return nil, err
			}
			if ok {
				coverage[id] = cov
				low, high = math.Min(low, cov), math.Max(high, cov)
			}
		}

		for _, fl := range data.Flankers() {
			id, _ := fl.ID()
			graph.Node(id).Attr("shape", "diamond")
		}
	}

	if len(coverage) > 0 {
		rainbow.SetLimits(low, high)
	}

	asm := g.Assembly()
	if asm == nil {
		return graph, nil
	}

	for _, c := range asm.Contigs() {
		for _, cs := range c.Spacers() {
			spid, _ := cs.SpacerID()
			node := graph.Node(spid)
			if cov, ok := coverage[spid]; ok {
				node.Attr("style", "filled")
				node.Attr("fillcolor", rainbow.Colour(cov))
			}

			for _, l := range cs.Links() {
				if !l.Forward {
					continue
				}
				target, ok := l.TargetID()
				if !ok {
					continue
				}
				graph.Edge(node, graph.Node(target))
			}
		}
	}

	return graph, nil
}
