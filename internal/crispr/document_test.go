package crispr

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

// readSample reads testdata/sample.crispr. G1 has 2 repeats, 3 spacers, 1
// flanker and a contig linking them. G2 has 1 repeat, 2 spacers and no assembly.
func readSample(t *testing.T) *Document {
	t.Helper()
	d, err := Read(filepath.Join("testdata", "sample.crispr"))
	require.NoError(t, err)
	return d
}

func mustParse(t *testing.T, xml string) *Document {
	t.Helper()
	d, err := Parse([]byte(xml))
	require.NoError(t, err)
	return d
}

func TestParse(t *testing.T) {
	type args struct {
		xml string
	}
	tests := []struct {
		name     string
		args     args
		wantKind Kind
		groups   int
	}{
		{
			"crispr root",
			args{`<crispr version="1.1"><group gid="G1"/><group gid="G2"/></crispr>`},
			0,
			2,
		},
		{
			"legacy root",
			args{`<crass_assem><group gid="G1"/></crass_assem>`},
			0,
			1,
		},
		{
			"no groups",
			args{`<crispr version="1.1"/>`},
			0,
			0,
		},
		{
			"unclosed element",
			args{`<crispr><group gid="G1"></crispr>`},
			StructuralError,
			0,
		},
		{
			"empty",
			args{``},
			StructuralError,
			0,
		},
		{
			"unknown root",
			args{`<plasmid/>`},
			StructuralError,
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.args.xml))
			if tt.wantKind != 0 {
				assert.Equal(t, tt.wantKind, KindOf(err))
				return
			}

			require.NoError(t, err)
			if got := len(d.Groups()); got != tt.groups {
				t.Errorf("len(Parse().Groups()) = %v, want %v", got, tt.groups)
			}
		})
	}
}

func TestRead(t *testing.T) {
	_, err := Read(filepath.Join("testdata", "missing.crispr"))
	assert.Equal(t, InputError, KindOf(err))

	malformed := filepath.Join("testdata", "malformed.crispr")
	_, err = Read(malformed)
	assert.Equal(t, StructuralError, KindOf(err))
	assert.Contains(t, err.Error(), malformed)

	d := readSample(t)
	assert.Equal(t, filepath.Join("testdata", "sample.crispr"), d.Path())
}

func TestDocument_Accessors(t *testing.T) {
	d := readSample(t)
	groups := d.Groups()
	require.Len(t, groups, 2)

	g1 := groups[0]
	id, _ := g1.ID()
	assert.Equal(t, "G1", id)
	assert.Equal(t, "1", g1.Number())
	consensus, _ := g1.Consensus()
	assert.Equal(t, "GTTTCAATCCACGCGCCCACG", consensus)

	data := g1.Data()
	require.NotNil(t, data)
	assert.Len(t, data.Repeats(), 2)
	assert.Len(t, data.Spacers(), 3)
	assert.Len(t, data.Flankers(), 1)

	cov, ok, err := data.Spacers()[0].Coverage()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 10.0, cov)

	contigs := g1.Assembly().Contigs()
	require.Len(t, contigs, 1)
	spacers := contigs[0].Spacers()
	require.Len(t, spacers, 3)

	links := spacers[1].Links()
	require.Len(t, links, 2)
	assert.False(t, links[0].Forward)
	assert.True(t, links[1].Forward)
	target, _ := links[1].TargetID()
	assert.Equal(t, "SP9", target)
	drid, _ := links[1].RepeatID()
	assert.Equal(t, "DR2", drid)

	last := spacers[2].Links()
	require.Len(t, last, 2)
	assert.Equal(t, CategoryFlanker, last[1].Target)

	assert.Nil(t, groups[1].Assembly())
}

func TestNodeKindOf(t *testing.T) {
	tests := []struct {
		tag  string
		want NodeKind
	}{
		{"crispr", KindRoot},
		{"crass_assem", KindRoot},
		{"group", KindGroup},
		{"drs", KindRepeats},
		{"spacer", KindSpacer},
		{"cspacer", KindContigSpacer},
		{"fflankers", KindLinks},
		{"metadata", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, NodeKindOf(etree.NewElement(tt.tag)))
		})
	}
	assert.Equal(t, KindUnknown, NodeKindOf(nil))
}

func TestLeaf_Coverage(t *testing.T) {
	d := mustParse(t, `<crispr><group gid="G1"><data><spacers>
		<spacer spid="SP1" seq="ACGT" cov=" 2.5 "/>
		<spacer spid="SP2" seq="ACGT"/>
		<spacer spid="SP3" seq="ACGT" cov="lots"/>
	</spacers></data></group></crispr>`)
	spacers := d.Groups()[0].Data().Spacers()

	cov, ok, err := spacers[0].Coverage()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2.5, cov)

	_, ok, err = spacers[1].Coverage()
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = spacers[2].Coverage()
	assert.Equal(t, DataError, KindOf(err))
}

func TestDocument_Write(t *testing.T) {
	d := readSample(t)
	out := filepath.Join(t.TempDir(), "nested", "out.crispr")
	require.NoError(t, d.Write(out))

	written, err := Read(out)
	require.NoError(t, err)
	assert.Len(t, written.Groups(), 2)
}
