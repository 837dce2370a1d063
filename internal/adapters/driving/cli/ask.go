package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naikan-labs/docchat-cli/internal/adapters/driving/tui/render"
	"github.com/naikan-labs/docchat-cli/internal/core/domain"
)

var (
	askMode string
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	Long: `Ask one question and print the answer without entering the chat.

Modes:
  document-search (aliases: search, doc)  Find where the information lives
  inquiry (aliases: ask, qa)              Answer directly with cited sources`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askMode, "mode", "m", "inquiry", "answer mode")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the display record as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	mode, err := domain.ParseAnswerMode(askMode)
	if err != nil {
		return err
	}

	rec, err := chatService.Ask(context.Background(), args[0], mode)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(render.New(nil).Record(rec))
	return nil
}
