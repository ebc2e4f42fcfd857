package client

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/clearstudy-ai/clearstudy/internal/api/handlers"
	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/spf13/cobra"
)

// ChatCmd creates the chat command.
func ChatCmd() *cobra.Command {
	var notesFile string

	cmd := &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask questions about generated notes",
		Long: `Asks a question grounded in a notes file produced by 'clearstudy generate'.

With a question argument, asks once and exits. Without one, starts an
interactive session that keeps the conversation history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := ""
			if len(args) == 1 {
				question = args[0]
			}
			return runChat(notesFile, question)
		},
	}

	cmd.Flags().StringVarP(&notesFile, "notes", "n", "", "Path to the notes file (required)")
	cmd.MarkFlagRequired("notes")

	return cmd
}

func runChat(notesFile, question string) error {
	content, err := os.ReadFile(notesFile)
	if err != nil {
		return fmt.Errorf("failed to read notes file: %w", err)
	}
	noteText := string(content)

	api := NewAPIClient()

	if question != "" {
		reply, err := ask(api, noteText, nil, question)
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	}

	fmt.Println("Interactive chat over your notes. Empty line or Ctrl-D exits.")
	var history []domain.ConversationTurn
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			break
		}

		reply, err := ask(api, noteText, history, q)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(reply)

		history = append(history,
			domain.ConversationTurn{Role: domain.RoleUser, Content: q},
			domain.ConversationTurn{Role: domain.RoleAssistant, Content: reply},
		)
	}
	return scanner.Err()
}

func ask(api *APIClient, noteText string, history []domain.ConversationTurn, question string) (string, error) {
	var resp handlers.ChatResponse
	err := api.PostJSON("/chat", handlers.ChatRequest{
		Notes:    noteText,
		Messages: history,
		Question: question,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}
