package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexmanie/sk-tracing-utils/internal/app"
	"github.com/alexmanie/sk-tracing-utils/internal/logger"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available on the Azure OpenAI resource.",
	Long: `Lists the models available on the configured Azure OpenAI resource
with their lifecycle status. The listing uses the plain client, so it does
not produce an exchange report.`,
	Args:             cobra.NoArgs,
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
			logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
		}

		app.ExecuteModelsCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(modelsCmd)
}
