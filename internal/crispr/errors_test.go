package crispr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"structural", newError(StructuralError, "in.crispr", "failed to parse xml"), 2},
		{"wrapped structural", errors.Wrap(newError(StructuralError, "", "bad"), "merge"), 2},
		{"input", newError(InputError, "", "No input file provided"), 1},
		{"plain", errors.New("disk full"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecoverable(t *testing.T) {
	assert.True(t, Recoverable(newError(DanglingReference, "G1", "no spacers with id")))
	assert.True(t, Recoverable(newError(CollisionWarning, "b.crispr", "group IDs conflict")))
	assert.True(t, Recoverable(newError(DataError, "G1", "spacer has no coverage")))
	assert.False(t, Recoverable(newError(StructuralError, "G1", "there is no data section")))
	assert.False(t, Recoverable(errors.New("disk full")))
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "G4: there is no data section", newError(StructuralError, "G4", "there is no data section").Error())
	assert.Equal(t, "No input file provided", newError(InputError, "", "No input file provided").Error())
	assert.Equal(t, InputError, KindOf(UsageError(errors.New("unknown flag: --z"))))
}
