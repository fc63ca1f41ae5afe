package crispr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMarkers = Markers{Repeat: "#", Spacer: "-", Flanker: "~"}

func TestCollectStats(t *testing.T) {
	stats, err := CollectStats(readSample(t), AllGroups, true)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	g1 := stats[0]
	assert.Equal(t, "G1", g1.ID)
	assert.Equal(t, 2, g1.Repeats)
	assert.Equal(t, 3, g1.Spacers)
	assert.Equal(t, 1, g1.Flankers)
	assert.Equal(t, 1, g1.Contigs)
	assert.Equal(t, []int{24, 22, 25}, g1.SpacerLengths)
	assert.Equal(t, []float64{10, 4, 7}, g1.SpacerCoverage)
	assert.Equal(t, 0, g1.MissingCoverage)

	assert.Equal(t, 4.0, g1.Coverage.Min)
	assert.Equal(t, 10.0, g1.Coverage.Max)
	assert.Equal(t, 7.0, g1.Coverage.Mean)
	assert.Equal(t, 7.0, g1.Coverage.Median)
	assert.InDelta(t, 3.0, g1.Coverage.StdDev, 1e-9)

	assert.Equal(t, 0, stats[1].Contigs)
}

func TestCollectStats_Selected(t *testing.T) {
	stats, err := CollectStats(readSample(t), GroupSet([]string{"G2"}), false)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "G2", stats[0].ID)
}

func TestWriteStats_NoGroups(t *testing.T) {
	stats, err := CollectStats(mustParse(t, `<crispr version="1.1"/>`), AllGroups, false)
	require.NoError(t, err)

	var js bytes.Buffer
	require.NoError(t, WriteStats(&js, stats, StatFormat{Format: "json"}))
	assert.Equal(t, "[]\n", js.String())

	var text bytes.Buffer
	require.NoError(t, WriteStats(&text, stats, StatFormat{}))
	assert.Empty(t, text.String())
}

func TestCollectStats_MissingCoverage(t *testing.T) {
	d := mustParse(t, `<crispr><group gid="G1" drseq="ACGT"><data><spacers>
		<spacer spid="SP1" seq="AAAA" cov="3"/>
		<spacer spid="SP2" seq="CCCCCC"/>
		<spacer spid="SP3" seq="GG" cov="n/a"/>
	</spacers></data></group></crispr>`)

	stats, err := CollectStats(d, AllGroups, false)
	require.NoError(t, err)
	require.Len(t, stats, 1)

	s := stats[0]
	assert.Equal(t, 3, s.Spacers)
	assert.Equal(t, 2, s.MissingCoverage)
	assert.Equal(t, []float64{3}, s.SpacerCoverage)
	assert.Equal(t, 3.0, s.Coverage.Mean)
	assert.Equal(t, 0.0, s.Coverage.StdDev)
	assert.Equal(t, 4.0, s.SpacerLength.Mean)
}

func TestWriteStats(t *testing.T) {
	stats, err := CollectStats(readSample(t), AllGroups, true)
	require.NoError(t, err)

	tests := []struct {
		name string
		f    StatFormat
		want string
	}{
		{
			"text",
			StatFormat{Markers: testMarkers},
			"G1 | GTTTCAATCCACGCGCCCACG | ##---~ | 2 3 1\n" +
				"G2 | CTTTCAATCCACGCGCCCACG | #-- | 1 2 0\n",
		},
		{
			"text with contigs",
			StatFormat{Format: "text", Assembly: true, Markers: testMarkers},
			"G1 | GTTTCAATCCACGCGCCCACG | ##---~ | 1 | 2 3 1\n" +
				"G2 | CTTTCAATCCACGCGCCCACG | #-- | 0 | 1 2 0\n",
		},
		{
			"custom markers",
			StatFormat{Markers: Markers{Repeat: "R", Spacer: "S", Flanker: "F"}},
			"G1 | GTTTCAATCCACGCGCCCACG | RRSSSF | 2 3 1\n" +
				"G2 | CTTTCAATCCACGCGCCCACG | RSS | 1 2 0\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteStats(&buf, stats, tt.f))
			if got := buf.String(); got != tt.want {
				t.Errorf("WriteStats() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteStats_Pretty(t *testing.T) {
	color.NoColor = true

	stats, err := CollectStats(readSample(t), AllGroups, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, stats, StatFormat{Pretty: true, Markers: testMarkers}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "gid"))
	assert.True(t, strings.HasSuffix(lines[1], "2 3 1"), lines[1])
	assert.Contains(t, lines[1], "##---~")
	assert.True(t, strings.HasSuffix(lines[2], "1 2 0"), lines[2])
}

func TestWriteStats_Structured(t *testing.T) {
	stats, err := CollectStats(readSample(t), AllGroups, false)
	require.NoError(t, err)

	var js bytes.Buffer
	require.NoError(t, WriteStats(&js, stats, StatFormat{Format: "json"}))
	assert.Contains(t, js.String(), `"gid": "G1"`)
	assert.Contains(t, js.String(), `"spacers": 3`)
	assert.NotContains(t, js.String(), "contigs")

	var yml bytes.Buffer
	require.NoError(t, WriteStats(&yml, stats, StatFormat{Format: "yaml"}))
	assert.Contains(t, yml.String(), "gid: G1")
	assert.Contains(t, yml.String(), "coverage:")

	err = WriteStats(&bytes.Buffer{}, stats, StatFormat{Format: "csv"})
	assert.Equal(t, InputError, KindOf(err))
}
