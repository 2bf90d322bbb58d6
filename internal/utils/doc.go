// Package utils provides a collection of helper functions and utilities for common tasks,
// such as type conversion, content type validation, file reading, and credential access.
// It is designed to simplify repetitive operations and ensure consistency across the application.
package utils
