package crispr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name    string
		t       Thresholds
		kept    []string
		removed []string
	}{
		{"no thresholds", Thresholds{}, []string{"G1", "G2"}, nil},
		{"spacers at count", Thresholds{Spacers: 3}, []string{"G1"}, []string{"G2"}},
		{"spacers below count", Thresholds{Spacers: 2}, []string{"G1", "G2"}, nil},
		{"repeats", Thresholds{Repeats: 2}, []string{"G1"}, []string{"G2"}},
		{"flankers", Thresholds{Flankers: 1}, []string{"G1"}, []string{"G2"}},
		{"contigs", Thresholds{Contigs: 1}, []string{"G1"}, []string{"G2"}},
		{"above every count", Thresholds{Spacers: 4}, nil, []string{"G1", "G2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, removed, err := Filter(readSample(t), tt.t)
			require.NoError(t, err)

			assert.Equal(t, tt.kept, groupIDs(filtered))
			assert.Equal(t, tt.removed, removed)
		})
	}
}

func TestFilter_NoData(t *testing.T) {
	d := mustParse(t, `<crispr><group gid="G1"/></crispr>`)

	_, _, err := Filter(d, Thresholds{Spacers: 1})
	assert.Equal(t, StructuralError, KindOf(err))

	filtered, removed, err := Filter(d, Thresholds{Contigs: 1})
	require.NoError(t, err)
	assert.Empty(t, groupIDs(filtered))
	assert.Equal(t, []string{"G1"}, removed)
}
