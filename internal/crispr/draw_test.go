package crispr

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/emicklei/dot"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDrawOptions = DrawOptions{Palette: "red-blue", Algorithm: "dot", Format: "png", Bins: 10}

// fakeRenderer records what it was asked to render.
type fakeRenderer struct {
	paths  []string
	graphs []string
}

func (f *fakeRenderer) Render(g *dot.Graph, algorithm, format, path string) error {
	f.paths = append(f.paths, path)
	f.graphs = append(f.graphs, g.String())
	return nil
}

func TestDraw(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRenderer{}
	require.NoError(t, Draw(readSample(t), AllGroups, testDrawOptions, dir, r))

	assert.Equal(t, []string{filepath.Join(dir, "G1.png"), filepath.Join(dir, "G2.png")}, r.paths)
}

func TestDraw_Selected(t *testing.T) {
	r := &fakeRenderer{}
	require.NoError(t, Draw(readSample(t), GroupSet([]string{"2"}), testDrawOptions, t.TempDir(), r))
	require.Len(t, r.paths, 1)
	assert.Equal(t, "G2.png", filepath.Base(r.paths[0]))
}

func TestDraw_Options(t *testing.T) {
	tests := []struct {
		name string
		opts DrawOptions
	}{
		{"palette", DrawOptions{Palette: "rainbow", Algorithm: "dot", Format: "eps", Bins: 10}},
		{"bins", DrawOptions{Palette: "red-blue", Algorithm: "dot", Format: "eps", Bins: 0}},
		{"algorithm", DrawOptions{Palette: "red-blue", Algorithm: "spring", Format: "eps", Bins: 10}},
		{"format", DrawOptions{Palette: "red-blue", Algorithm: "neato", Bins: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRenderer{}
			err := Draw(readSample(t), AllGroups, tt.opts, t.TempDir(), r)
			assert.Equal(t, InputError, KindOf(err))
			assert.Empty(t, r.paths)
		})
	}
}

func TestBuildGraph(t *testing.T) {
	g1 := readSample(t).Groups()[0]
	graph, err := BuildGraph(g1, testDrawOptions)
	require.NoError(t, err)

	out := graph.String()
	assert.Equal(t, 3, strings.Count(out, "circle"))
	assert.Equal(t, 1, strings.Count(out, "diamond"))

	// SP7 -> SP3 -> SP9 -> FL5, backward links aren't drawn
	assert.Equal(t, 3, strings.Count(out, "->"))

	// the lowest and highest coverage are either end of the palette
	assert.Contains(t, out, "#ff0000")
	assert.Contains(t, out, "#0000ff")
}

func TestBuildGraph_BadCoverage(t *testing.T) {
	d := mustParse(t, `<crispr><group gid="G1"><data><spacers>
		<spacer spid="SP1" seq="ACGT" cov="high"/>
	</spacers></data></group></crispr>`)

	_, err := BuildGraph(d.Groups()[0], testDrawOptions)
	assert.Equal(t, DataError, KindOf(err))

	r := &fakeRenderer{}
	require.NoError(t, Draw(d, AllGroups, testDrawOptions, t.TempDir(), r))
	assert.Empty(t, r.paths)
}

func TestGraphviz_Render(t *testing.T) {
	g := dot.NewGraph(dot.Directed)
	g.Node("SP1")

	gv := Graphviz{Dir: t.TempDir()}
	err := gv.Render(g, "dot", "png", filepath.Join(t.TempDir(), "G1.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute")
	assert.NotEqual(t, err, errors.Cause(err))
}
