package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexmanie/sk-tracing-utils/internal/app"
	"github.com/alexmanie/sk-tracing-utils/internal/config"
	"github.com/alexmanie/sk-tracing-utils/internal/logger"
	"github.com/alexmanie/sk-tracing-utils/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "sk-trace [flags] {prompt}",
		Short: "Send a chat prompt to Azure OpenAI and print the raw HTTP exchange.",
		Long: `sk-trace is a CLI tool for inspecting the HTTP traffic behind Azure OpenAI calls.

It sends your prompt through an instrumented HTTP client, prints the
assistant's reply, and then reports the exact request and response that
went over the wire: headers and bodies, exactly as sent and received.

The report format can be plain text, JSON, or YAML.`,
		Version:          version.Full(),
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, args[0])
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	persistentFlags := rootCmd.PersistentFlags()

	persistentFlags.StringP(
		"format",
		"f",
		"",
		"report format: text, json, or yaml.")

	persistentFlags.StringP(
		"deployment",
		"d",
		"",
		"Azure OpenAI deployment name.")

	persistentFlags.String(
		"api-version",
		"",
		"Azure OpenAI API version, for example: 2024-06-01.")

	persistentFlags.StringP(
		"timeout",
		"t",
		"",
		"request timeout, for example: 30s, 2m.")

	persistentFlags.StringP(
		"output",
		"o",
		"",
		"write the exchange report to this file instead of stdout (the path will be created if it doesn’t exist).")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("format"); flag != nil && flag.Changed {
		cfg.ReportFormat, _ = flags.GetString("format")
	}

	if flag := flags.Lookup("deployment"); flag != nil && flag.Changed {
		cfg.Deployment, _ = flags.GetString("deployment")
	}

	if flag := flags.Lookup("api-version"); flag != nil && flag.Changed {
		cfg.APIVersion, _ = flags.GetString("api-version")
	}

	if flag := flags.Lookup("timeout"); flag != nil && flag.Changed {
		cfg.RequestTimeout, _ = flags.GetString("timeout")
	}

	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.ReportPath, _ = flags.GetString("output")
	}

	return config.ValidateConfig(cfg)
}
