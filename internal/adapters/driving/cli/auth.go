package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/naikan-labs/docchat-cli/internal/adapters/driven/config/file"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API credentials",
	Long: `Store and inspect the API key used by the LLM and embedding services.

The key is kept in the local config file with owner-only permissions and is
never sent anywhere except the configured API endpoint.`,
}

var authSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the API key",
	Long: `Prompt for an API key and store it in the config file.

The key is read without terminal echo. To avoid the prompt entirely, pipe
the key on stdin:

  echo "$OPENAI_API_KEY" | docchat auth set-key`,
	RunE: runAuthSetKey,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key (masked)",
	RunE:  runAuthShow,
}

func init() {
	authCmd.AddCommand(authSetKeyCmd)
	authCmd.AddCommand(authShowCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSetKey(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Print("API key: ")
	key := strings.TrimSpace(readPassword())
	cmd.Println()

	if key == "" {
		return errors.New("no key entered")
	}

	configStore.Set(file.KeyLLMAPIKey, key)
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("API key stored in %s\n", configStore.Path())
	return nil
}

func runAuthShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := configStore.GetString(file.KeyLLMAPIKey, "")
	if key == "" {
		cmd.Println("No API key stored. Run 'docchat auth set-key'.")
		return nil
	}

	cmd.Printf("API key: %s\n", maskKey(key))
	return nil
}

// readPassword reads a line without echo when stdin is a terminal,
// falling back to plain line input otherwise.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// maskKey keeps the first and last few characters of a key visible.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
