package notes

import (
	"fmt"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
)

const detailedSystemPrompt = `You are a meticulous academic archivist. Your goal is to create a VERBATIM-LEVEL COMPREHENSIVE record of the content.

CRITICAL INSTRUCTIONS FOR DETAILED MODE:
1. **CAPTURE EVERYTHING**: Do not summarize or condense. If a concept is explained, write down the full explanation.
2. **EVERY EXAMPLE**: Include every single example, analogy, or case study mentioned.
3. **NUMBERS & DATA**: specific numbers, dates, formulas, or statistics MUST be preserved exactly.
4. **NO SKIPPING**: Do not skip "introductory" or "side" remarks if they contain any context.
5. **STRUCTURE**: Use nested bullet points to show the hierarchy of every single thought.
6. **Completeness**: It is better to be too long than too short. The user wants to know EXACTLY what was said.
7. **EXPAND**: If a point is brief, expand on it using the context provided.

This is part %d of %d. Treat this chunk as a critical document that needs to be fully preserved in note form.`

// systemPrompt selects the per-level instruction block. Part numbering is
// 1-based.
func systemPrompt(level domain.DetailLevel, part, total int) string {
	switch level {
	case domain.DetailEasy:
		return fmt.Sprintf("You are a helpful tutor creating easy-to-understand study notes. This is part %d of %d of the content. Focus on key concepts and simple explanations.", part, total)
	case domain.DetailDetailed:
		return fmt.Sprintf(detailedSystemPrompt, part, total)
	default:
		return fmt.Sprintf("You are an expert study notes generator. Create clean, organized notes. This is part %d of %d.", part, total)
	}
}

func userPrompt(kind domain.InputKind, level domain.DetailLevel, part, total int, chunk string) string {
	return fmt.Sprintf(`Input source: %s
Detail Level: %s
Part: %d/%d

Content to process:
%s

Generate detailed study notes for THIS PART ONLY. Maintain formatting.`, kind, level, part, total, chunk)
}

const chatSystemPromptFormat = `You are a helpful AI tutor. The user has some study notes and wants to ask questions about them.

Context (Study Notes):
%s

Instructions:
1. Answer the user's question based PRIMARILY on the provided notes.
2. If the answer is not in the notes, you can use your general knowledge but mention that it's outside the notes.
3. Be concise, clear, and helpful.
4. Use markdown for formatting if needed.`
