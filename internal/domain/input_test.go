package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputKind_IsValid(t *testing.T) {
	for _, k := range AllInputKinds {
		assert.True(t, k.IsValid(), "kind %s should be valid", k)
	}
	assert.False(t, InputKind("").IsValid())
	assert.False(t, InputKind("audio").IsValid())
}

func TestNormalizeDetailLevel(t *testing.T) {
	level, ok := NormalizeDetailLevel("")
	assert.True(t, ok)
	assert.Equal(t, DetailMedium, level)

	level, ok = NormalizeDetailLevel("detailed")
	assert.True(t, ok)
	assert.Equal(t, DetailDetailed, level)

	_, ok = NormalizeDetailLevel("verbose")
	assert.False(t, ok)
}

func TestNewNormalizedInput(t *testing.T) {
	input, err := NewNormalizedInput("Mitochondria is the powerhouse of the cell.", InputKindText)
	require.NoError(t, err)
	assert.Equal(t, InputKindText, input.Kind)
	assert.Equal(t, 43, input.SourceLength)

	_, err = NewNormalizedInput("   \n\t ", InputKindPDF)
	assert.ErrorIs(t, err, ErrEmptyContent)
}
