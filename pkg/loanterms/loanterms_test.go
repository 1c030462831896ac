package loanterms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		term int
		want int
	}{
		{term: 0, want: 36},
		{term: 1, want: 36},
		{term: 42, want: 36},
		{term: 43, want: 48},
		{term: 48, want: 48},
		{term: 54, want: 48},
		{term: 66, want: 60},
		{term: 75, want: 72},
		{term: 84, want: 84},
		{term: 120, want: 84},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.term)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "term %d", tt.term)
	}
}

func TestNormalizeRejectsNegative(t *testing.T) {
	_, err := Normalize(-1)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestNormalizeRange(t *testing.T) {
	r, err := NormalizeRange(37, 60)
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 36, Max: 60, Label: "36-60 Months"}, r)

	r, err = NormalizeRange(61, 75)
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 60, Max: 72, Label: "60-72 Months"}, r)

	r, err = NormalizeRange(66, 66)
	require.NoError(t, err)
	assert.Equal(t, "60 Months", r.Label)

	_, err = NormalizeRange(72, 60)
	assert.ErrorContains(t, err, "min (72) > max (60)")
}

func TestDescribe(t *testing.T) {
	info, err := Describe(66)
	require.NoError(t, err)
	assert.Equal(t, Info{Original: 66, Normalized: 60, Distance: 6, WasModified: true}, info)

	info, err = Describe(48)
	require.NoError(t, err)
	assert.False(t, info.WasModified)
	assert.Zero(t, info.Distance)

	info, err = Describe(0)
	require.NoError(t, err)
	assert.Equal(t, Info{Original: 0, Normalized: 36, Distance: 36, WasModified: true}, info)
}

func TestIsStandard(t *testing.T) {
	assert.True(t, IsStandard(60))
	assert.False(t, IsStandard(66))
	assert.False(t, IsStandard(0))
}
