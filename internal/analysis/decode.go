// Package analysis decodes job-match analysis results and prepares them for display.
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// ErrEmptyResult is returned when there is nothing to decode
var ErrEmptyResult = errors.New("empty analysis result")

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// Model output often wraps JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// Decode parses collaborator output into a CompatibilityResult.
func Decode(raw []byte) (*types.CompatibilityResult, error) {
	text := CleanJSONBlock(string(raw))
	if text == "" {
		return nil, ErrEmptyResult
	}
	var result types.CompatibilityResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %w", err)
	}
	return &result, nil
}
