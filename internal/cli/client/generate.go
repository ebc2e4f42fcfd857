package client

import (
	"fmt"
	"os"

	"github.com/clearstudy-ai/clearstudy/internal/api/handlers"
	"github.com/spf13/cobra"
)

// GenerateCmd creates the generate command.
func GenerateCmd() *cobra.Command {
	var (
		inputType   string
		detailLevel string
		textFile    string
		outFile     string
	)

	cmd := &cobra.Command{
		Use:   "generate [text]",
		Short: "Generate study notes from extracted text",
		Long: `Generates study notes from previously extracted text.

Pass the text as an argument, or use --input to read it from a file
(typically the output of 'clearstudy process -o').`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			return runGenerate(text, textFile, inputType, detailLevel, outFile)
		},
	}

	cmd.Flags().StringVarP(&textFile, "input", "i", "", "Read the text from a file")
	cmd.Flags().StringVarP(&inputType, "type", "t", "text", "Source type of the text (youtube, video, pdf, docx, pptx, text)")
	cmd.Flags().StringVarP(&detailLevel, "level", "l", "", "Detail level: easy, medium, or detailed (default medium)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write notes to a file instead of stdout")

	return cmd
}

func runGenerate(text, textFile, inputType, detailLevel, outFile string) error {
	if text == "" && textFile == "" {
		return fmt.Errorf("text is required: pass it as an argument or via --input")
	}
	if text == "" {
		content, err := os.ReadFile(textFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text = string(content)
	}

	api := NewAPIClient()

	var resp handlers.GenerateResponse
	err := api.PostJSON("/generate", handlers.GenerateRequest{
		Text:        text,
		InputType:   inputType,
		DetailLevel: detailLevel,
	}, &resp)
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(resp.Notes), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("notes written to %s\n", outFile)
		return nil
	}

	fmt.Println(resp.Notes)
	return nil
}
