package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexmanie/sk-tracing-utils/internal/app"
)

var (
	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Authentication management commands",
		Long: `Manage authentication for Azure OpenAI.

Use 'auth set' to store your API key in the configuration file.`,
	}

	authSetCmd = &cobra.Command{
		Use:   "set {api-key}",
		Short: "Store the Azure OpenAI API key in the configuration file",
		Long: `Stores the given API key in the configuration file so it does not have
to be passed through the environment on every run.

Find the key in the Azure portal under your Azure OpenAI resource,
"Keys and Endpoint". Either of the two keys works:

sk-trace auth set 0123456789abcdef0123456789abcdef`,
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteAuthSetCommand(cmd.Context(), appConfig, args[0])
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	// Add set subcommand to auth command.
	authCmd.AddCommand(authSetCmd)

	// Add auth command to root command.
	rootCmd.AddCommand(authCmd)
}
