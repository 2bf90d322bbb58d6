package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexmanie/sk-tracing-utils/internal/app"
	"github.com/alexmanie/sk-tracing-utils/internal/logger"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var embedCmd = &cobra.Command{
	Use:   "embed {file}",
	Short: "Embed every line of a file and report the last HTTP exchange.",
	Long: `Reads the given file, embeds each unique non-empty line through the
instrumented client (one request per line), and prints the report of the
last captured exchange.`,
	Args:             cobra.ExactArgs(1),
	PersistentPreRun: initConfig,
	Run: func(cmd *cobra.Command, args []string) {
		if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
			logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
		}

		app.ExecuteEmbedCommand(cmd.Context(), appConfig, args[0])
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	rootCmd.AddCommand(embedCmd)
}
