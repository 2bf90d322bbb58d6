package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/alexmanie/sk-tracing-utils/internal/constants"
	"github.com/alexmanie/sk-tracing-utils/internal/logger"
	"github.com/alexmanie/sk-tracing-utils/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// Endpoint is the Azure OpenAI resource endpoint URL.
	Endpoint string `mapstructure:"endpoint"`
	// APIKey is the API key for authenticating requests.
	APIKey string `mapstructure:"api_key"`
	// APIVersion is the Azure OpenAI REST API version, e.g. "2024-06-01".
	APIVersion string `mapstructure:"api_version"`
	// Deployment is the chat completion deployment name.
	Deployment string `mapstructure:"deployment"`
	// EmbeddingDeployment is the embeddings deployment name.
	// Falls back to Deployment when empty.
	EmbeddingDeployment string `mapstructure:"embedding_deployment"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// MaxCaptureLogLength sets the maximum size of dumped exchange data
	// in debug logs (e.g., "64KB", "1MB"). Captured data itself is never truncated.
	MaxCaptureLogLength string `mapstructure:"max_capture_log_length"`
	// RequestTimeout is the timeout for a single HTTP request (e.g., "60s", "2m").
	RequestTimeout string `mapstructure:"request_timeout"`
	// RetryAttemptsCount is the number of attempts for requests rejected with HTTP 429.
	RetryAttemptsCount int64 `mapstructure:"retry_attempts_count"`
	// MinRetryPause is the minimum pause duration before retrying.
	MinRetryPause string `mapstructure:"min_retry_pause"`
	// MaxRetryPause is the maximum pause duration before retrying.
	MaxRetryPause string `mapstructure:"max_retry_pause"`
	// ReportFormat selects the exchange report output format: text, json, or yaml.
	ReportFormat string `mapstructure:"report_format"`
	// ReportPath is an optional file path the report is written to instead of stdout.
	// The path will be created if it doesn't exist.
	ReportPath string `mapstructure:"report_path"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedMaxCaptureLogLength is the parsed debug dump size limit in bytes.
	ParsedMaxCaptureLogLength int64
	// ParsedRequestTimeout is the parsed request timeout.
	ParsedRequestTimeout time.Duration
	// ParsedMinRetryPause is the parsed minimum retry pause duration.
	ParsedMinRetryPause time.Duration
	// ParsedMaxRetryPause is the parsed maximum retry pause duration.
	ParsedMaxRetryPause time.Duration
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".sk-trace.yaml"

	// EnvPrefix is the prefix for environment variable overrides,
	// e.g. SKTRACE_ENDPOINT, SKTRACE_API_KEY, SKTRACE_API_VERSION.
	EnvPrefix = "SKTRACE"

	// DefaultAPIVersion is the API version used when none is configured.
	DefaultAPIVersion = "2024-06-01"

	// DefaultMaxCaptureLogLength is the default maximum size (in bytes)
	// of exchange dumps written to debug logs.
	DefaultMaxCaptureLogLength = 64 * 1024 // 64 KB

	// DefaultRequestTimeout is the default timeout for a single HTTP request.
	DefaultRequestTimeout = 2 * time.Minute

	// DefaultRetryAttemptsCount is the default number of attempts for throttled requests.
	DefaultRetryAttemptsCount = 3
)

// Report format values accepted in ReportFormat.
const (
	ReportFormatText = "text"
	ReportFormatJSON = "json"
	ReportFormatYAML = "yaml"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyEndpoint indicates that the endpoint is missing.
	ErrEmptyEndpoint = errors.New("endpoint cannot be empty")
	// ErrInvalidEndpoint indicates that the endpoint is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("endpoint must be an absolute http(s) URL")
	// ErrEmptyAPIKey indicates that the API key is missing.
	ErrEmptyAPIKey = errors.New("api key cannot be empty")
	// ErrEmptyAPIVersion indicates that the API version is missing.
	ErrEmptyAPIVersion = errors.New("api version cannot be empty")
	// ErrEmptyDeployment indicates that the deployment name is missing.
	ErrEmptyDeployment = errors.New("deployment cannot be empty")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidRetryAttempts indicates that the retry attempts count is invalid.
	ErrInvalidRetryAttempts = errors.New("retry attempts count must be a positive integer")
	// ErrInvalidRequestTimeout indicates that the request timeout is invalid.
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	// ErrInvalidMinRetryPause indicates that the min retry pause duration is invalid.
	ErrInvalidMinRetryPause = errors.New("min_retry_pause must be positive")
	// ErrInvalidMaxRetryPause indicates that the max retry pause duration is invalid.
	ErrInvalidMaxRetryPause = errors.New("max_retry_pause must be positive")
	// ErrMaxRetryPauseTooLow indicates that max_retry_pause is lower than min_retry_pause.
	ErrMaxRetryPauseTooLow = errors.New("max_retry_pause must be greater than or equal to min_retry_pause")
	// ErrUnknownReportFormat indicates that the report format is not recognized.
	ErrUnknownReportFormat = errors.New("unknown report format")
)

// LoadConfig loads configuration settings from a YAML file and the environment.
// Environment variables prefixed with SKTRACE_ override file values,
// so endpoint and credentials may be supplied without any file at all.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	// Make sure env-only keys are visible to Unmarshal.
	for _, key := range []string{
		"endpoint", "api_key", "api_version", "deployment", "embedding_deployment",
		"log_level", "max_capture_log_length", "request_timeout",
		"retry_attempts_count", "min_retry_pause", "max_retry_pause",
		"report_format", "report_path",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine when the environment carries the settings.
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,gocognit,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	if cfg.Endpoint == "" {
		return ErrEmptyEndpoint
	}

	parsedEndpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}

	if parsedEndpoint.Host == "" || (parsedEndpoint.Scheme != "http" && parsedEndpoint.Scheme != "https") {
		return fmt.Errorf("%w: '%s'", ErrInvalidEndpoint, cfg.Endpoint)
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return ErrEmptyAPIKey
	}

	if cfg.APIVersion = strings.TrimSpace(cfg.APIVersion); cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}

	if cfg.Deployment = strings.TrimSpace(cfg.Deployment); cfg.Deployment == "" {
		return ErrEmptyDeployment
	}

	if cfg.EmbeddingDeployment = strings.TrimSpace(cfg.EmbeddingDeployment); cfg.EmbeddingDeployment == "" {
		cfg.EmbeddingDeployment = cfg.Deployment
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	maxCaptureLogLength := strings.TrimSpace(cfg.MaxCaptureLogLength)
	if maxCaptureLogLength == "" || maxCaptureLogLength == "0" {
		cfg.ParsedMaxCaptureLogLength = DefaultMaxCaptureLogLength
	} else {
		parsedLength, parseErr := humanize.ParseBytes(maxCaptureLogLength)
		if parseErr != nil {
			return fmt.Errorf("failed to parse max capture log length: %w", parseErr)
		}

		cfg.ParsedMaxCaptureLogLength = utils.SafeUint64ToInt64(parsedLength)
	}

	if cfg.RetryAttemptsCount == 0 {
		cfg.RetryAttemptsCount = DefaultRetryAttemptsCount
	}

	if cfg.RetryAttemptsCount < 0 {
		return ErrInvalidRetryAttempts
	}

	if cfg.RequestTimeout == "" {
		cfg.ParsedRequestTimeout = DefaultRequestTimeout
	} else {
		cfg.ParsedRequestTimeout, err = time.ParseDuration(cfg.RequestTimeout)
		if err != nil {
			return fmt.Errorf("failed to parse request timeout: %w", err)
		}

		if cfg.ParsedRequestTimeout <= 0 {
			return ErrInvalidRequestTimeout
		}
	}

	if cfg.MinRetryPause == "" {
		cfg.MinRetryPause = "1s"
	}

	cfg.ParsedMinRetryPause, err = time.ParseDuration(cfg.MinRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse min retry pause: %w", err)
	}

	if cfg.ParsedMinRetryPause <= 0 {
		return ErrInvalidMinRetryPause
	}

	if cfg.MaxRetryPause == "" {
		cfg.MaxRetryPause = "10s"
	}

	cfg.ParsedMaxRetryPause, err = time.ParseDuration(cfg.MaxRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse max retry pause: %w", err)
	}

	if cfg.ParsedMaxRetryPause <= 0 {
		return ErrInvalidMaxRetryPause
	}

	if cfg.ParsedMaxRetryPause < cfg.ParsedMinRetryPause {
		return ErrMaxRetryPauseTooLow
	}

	if cfg.ReportFormat == "" {
		cfg.ReportFormat = ReportFormatText
	}

	cfg.ReportFormat = strings.ToLower(strings.TrimSpace(cfg.ReportFormat))
	switch cfg.ReportFormat {
	case ReportFormatText, ReportFormatJSON, ReportFormatYAML:
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownReportFormat, cfg.ReportFormat)
	}

	return nil
}

// SaveConfig saves the configuration to the file while preserving the original format and order.
// Only the api_key value is rewritten; everything else stays untouched.
func SaveConfig(cfg *Config) error {
	configFile := getConfigFilePath()

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.APIKey, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Update the api_key value in the node tree.
	updateAPIKeyInNode(&node, cfg.APIKey)

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	// Write the file back with preserved order.
	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getConfigFilePath returns the config file path from viper or the default.
func getConfigFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		return DefaultConfigFilename
	}

	return configFile
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile, apiKey string, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// File doesn't exist, create it with viper.
	viper.Set("api_key", apiKey)

	if err = viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateAPIKeyInNode updates the api_key value in the YAML node tree.
func updateAPIKeyInNode(node *yaml.Node, apiKey string) {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value == "api_key" {
			// Update the value while preserving style.
			valueNode.Value = apiKey

			// Ensure it's quoted if it contains special characters.
			if valueNode.Style == 0 {
				valueNode.Style = yaml.DoubleQuotedStyle
			}

			break
		}
	}
}
