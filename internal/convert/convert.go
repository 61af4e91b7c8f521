package convert

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Markdown renders an HTML fragment as markdown. Link targets and image
// references survive the conversion and lines are not wrapped. The result
// has every line trimmed and blank lines removed.
func Markdown(fragment string) (string, error) {
	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return CleanLines(md), nil
}

// CleanLines trims each line, drops empty ones, and rejoins with newlines.
func CleanLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}
