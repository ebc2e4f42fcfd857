package notes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortInputSingleChunk(t *testing.T) {
	chunks := chunkText("short text", DefaultChunkConfig())
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestChunkText_Empty(t *testing.T) {
	assert.Empty(t, chunkText("", DefaultChunkConfig()))
}

func TestChunkText_CountIsCeilOfLengthOverStride(t *testing.T) {
	cfg := ChunkConfig{Size: 100, Overlap: 10}
	stride := cfg.Size - cfg.Overlap

	for _, length := range []int{1, 89, 90, 91, 100, 180, 181, 450, 12001} {
		text := strings.Repeat("a", length)
		want := (length + stride - 1) / stride
		assert.Len(t, chunkText(text, cfg), want, "length %d", length)
	}
}

func TestChunkText_WindowsOverlap(t *testing.T) {
	cfg := ChunkConfig{Size: 100, Overlap: 10}
	text := strings.Repeat("abcdefghij", 25) // 250 chars

	chunks := chunkText(text, cfg)
	require.Len(t, chunks, 3)

	// Each window starts one stride after the previous, so consecutive
	// chunks share the overlap region.
	assert.Equal(t, text[0:100], chunks[0])
	assert.Equal(t, text[90:190], chunks[1])
	assert.Equal(t, text[180:250], chunks[2])
	assert.Equal(t, chunks[0][90:], chunks[1][:10])
}

func TestChunkText_LastChunkNeverExceedsSize(t *testing.T) {
	cfg := ChunkConfig{Size: 50, Overlap: 5}
	for _, length := range []int{49, 50, 51, 120, 121} {
		chunks := chunkText(strings.Repeat("x", length), cfg)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), cfg.Size)
		}
	}
}

func TestChunkText_DegenerateOverlap(t *testing.T) {
	// Overlap >= size would loop forever with a naive stride; the whole
	// input comes back as one chunk instead.
	chunks := chunkText("some text", ChunkConfig{Size: 10, Overlap: 10})
	require.Len(t, chunks, 1)
	assert.Equal(t, "some text", chunks[0])
}
