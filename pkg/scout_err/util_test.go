package scout_err

import (
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestExtractSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		output   string
		expected string
	}{
		{
			name:     "empty output",
			output:   "",
			expected: "No output provided.",
		},
		{
			name:     "picks error lines",
			output:   "fetching index\nE: Unable to locate package foo\ndone",
			expected: "E: Unable to locate package foo",
		},
		{
			name:     "caps candidates",
			output:   "error: one\nerror: two\nerror: three",
			expected: "error: one - error: two",
		},
		{
			name:     "falls back to first line",
			output:   "\n\nsome output\nmore output",
			expected: "some output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ExtractSummary(tt.output, 2))
		})
	}
}

func TestExpectedErrorMarking(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewExpectedError(nil))

	base := cerr.New("tool missing")
	wrapped := NewExpectedError(base)
	assert.True(t, IsExpectedUserError(wrapped))
	assert.False(t, IsExpectedUserError(base))
	assert.Equal(t, "tool missing", wrapped.Error())

	// Survives further wrapping.
	assert.True(t, IsExpectedUserError(cerr.Wrap(wrapped, "outer")))
}
