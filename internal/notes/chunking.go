package notes

// ChunkConfig controls how input text is windowed before generation.
// 12,000 characters is roughly 3,000 tokens; together with the bounded
// output this keeps a single request under the provider's per-request
// token ceiling. The overlap carries context across window boundaries.
type ChunkConfig struct {
	Size    int
	Overlap int
}

func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{Size: 12000, Overlap: 500}
}

// chunkText slices text into fixed windows of cfg.Size advancing by
// cfg.Size - cfg.Overlap. The final window may be shorter. Empty input
// yields no chunks.
func chunkText(text string, cfg ChunkConfig) []string {
	if text == "" {
		return nil
	}

	stride := cfg.Size - cfg.Overlap
	if stride <= 0 {
		return []string{text}
	}

	var chunks []string
	for i := 0; i < len(text); i += stride {
		end := i + cfg.Size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[i:end])
	}
	return chunks
}
