// Package persona holds the assistant's identity: the system context sent with
// every completion request, the interview-question classifier, and the canned
// answers returned without calling a model.
package persona

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed default.txt
var defaultContext string

// Default returns the built-in persona context.
func Default() string {
	return strings.TrimSpace(defaultContext)
}

// Load returns the persona context stored at path, or the built-in context
// when path is empty.
func Load(path string) (string, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading persona file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("persona file %s is empty", path)
	}
	return text, nil
}
