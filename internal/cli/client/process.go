package client

import (
	"fmt"
	"os"

	"github.com/clearstudy-ai/clearstudy/internal/api/handlers"
	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/spf13/cobra"
)

// fileFieldByKind maps input kinds to the multipart field the API expects.
var fileFieldByKind = map[string]string{
	"pdf":   "pdfFile",
	"docx":  "docxFile",
	"pptx":  "pptxFile",
	"video": "videoFile",
}

// ProcessCmd creates the process command.
func ProcessCmd() *cobra.Command {
	var (
		file    string
		url     string
		text    string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "process <type>",
		Short: "Extract text from study material",
		Long: `Extracts plain text from study material of the given type.

Types: youtube, video, pdf, docx, pptx, text.
Use --file for documents and video, --url for youtube, --text for pasted text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(args[0], file, url, text, outFile)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the document or video file")
	cmd.Flags().StringVarP(&url, "url", "u", "", "YouTube video URL")
	cmd.Flags().StringVarP(&text, "text", "t", "", "Pasted text content")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write extracted text to a file instead of stdout")

	return cmd
}

func runProcess(inputType, file, url, text, outFile string) error {
	api := NewAPIClient()

	fields := map[string]string{"inputType": inputType}
	fileField := ""

	switch domain.InputKind(inputType) {
	case domain.InputKindText:
		if text == "" {
			return fmt.Errorf("--text is required for input type text")
		}
		fields["pastedText"] = text
	case domain.InputKindYouTube:
		if url == "" {
			return fmt.Errorf("--url is required for input type youtube")
		}
		fields["youtubeUrl"] = url
	default:
		if file == "" {
			return fmt.Errorf("--file is required for input type %s", inputType)
		}
		fileField = fileFieldByKind[inputType]
	}

	var resp handlers.ProcessResponse
	if err := api.PostMultipart("/process", fields, fileField, file, &resp); err != nil {
		return err
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(resp.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("extracted %d characters to %s\n", resp.TextLength, outFile)
		return nil
	}

	fmt.Println(resp.Text)
	return nil
}
