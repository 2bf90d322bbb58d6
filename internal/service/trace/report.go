package trace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexmanie/sk-tracing-utils/internal/config"
	"github.com/alexmanie/sk-tracing-utils/internal/constants"
)

// SaveReport writes a rendered report to the given path and returns the path
// actually written. When the path carries no extension, one matching the
// report format is appended. Parent directories are created as needed.
func SaveReport(path, format, report string) (string, error) {
	if filepath.Ext(path) == "" {
		path += extensionForFormat(format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(report), constants.DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}

// extensionForFormat maps a report format to a file extension.
func extensionForFormat(format string) string {
	switch format {
	case config.ReportFormatJSON:
		return constants.ExtensionJSON
	case config.ReportFormatYAML:
		return constants.ExtensionYAML
	default:
		return constants.ExtensionText
	}
}
