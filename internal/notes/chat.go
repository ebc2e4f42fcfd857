package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/clearstudy-ai/clearstudy/internal/llm"
)

// fallbackChatReply is returned when the model yields an empty completion.
const fallbackChatReply = "I could not generate a response."

// ChatEngine answers questions grounded in a previously generated note
// document. Each call is a single bounded completion; the full notes ride
// along in the system prompt, so there is no server-side session state.
type ChatEngine struct {
	llm Completer
}

func NewChatEngine(completer Completer) *ChatEngine {
	return &ChatEngine{llm: completer}
}

// Chat answers question using notes as primary context, with history
// providing earlier turns of the conversation.
func (e *ChatEngine) Chat(ctx context.Context, noteText string, history []domain.ConversationTurn, question string) (string, error) {
	messages := make([]domain.ConversationTurn, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, domain.ConversationTurn{Role: domain.RoleUser, Content: question})

	reply, err := e.llm.Complete(ctx, llm.CompletionRequest{
		Model:        llm.DefaultChatModel,
		SystemPrompt: fmt.Sprintf(chatSystemPromptFormat, noteText),
		Messages:     messages,
		Temperature:  0.7,
		MaxTokens:    1024,
	})
	if err != nil {
		return "", domain.NewUpstreamError("chat generation failed", err)
	}

	if strings.TrimSpace(reply) == "" {
		return fallbackChatReply, nil
	}
	return reply, nil
}
