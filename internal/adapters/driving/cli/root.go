// Package cli provides the command-line interface for docchat.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/naikan-labs/docchat-cli/internal/adapters/driven/config/file"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driven"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driving"
	"github.com/naikan-labs/docchat-cli/internal/logger"
)

// version is the build version, set via SetVersion from main.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// initServices builds and injects the services once flags are parsed.
// Set from main; nil in tests, which inject services directly.
var initServices func(configDir string) error

// Services injected from main. Commands check for nil and fail with a
// clear error rather than panic, so partial wiring in tests is fine.
var (
	chatService    driving.ChatService
	sessionService driving.SessionService
	evalRunner     driving.EvalRunner
	evalStore      driven.EvalStore
	configStore    *file.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your internal document corpus",
	Long: `Docchat answers questions from an indexed internal document corpus.

Two answer modes are available:
  document-search  Find which document holds the information you describe
  inquiry          Get a direct answer with cited sources

Run 'docchat chat' for the interactive conversation, or 'docchat ask' for
a single question.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if initServices != nil {
			return initServices(configDir)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.docchat)")
}

// Services bundles everything the commands need.
type Services struct {
	Chat        driving.ChatService
	Session     driving.SessionService
	EvalRunner  driving.EvalRunner
	EvalStore   driven.EvalStore
	ConfigStore *file.ConfigStore
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	chatService = s.Chat
	sessionService = s.Session
	evalRunner = s.EvalRunner
	evalStore = s.EvalStore
	configStore = s.ConfigStore
}

// SetInitializer registers the function that wires services after flag
// parsing, so --config can influence where they load from.
func SetInitializer(fn func(configDir string) error) {
	initServices = fn
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
