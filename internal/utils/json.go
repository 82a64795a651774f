/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Pre-compiled regexes for JSON repair (compiled once, used many times).
var (
	// Fix trailing commas before closing brace/bracket
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)

	// Fix single quotes for object keys: {'key': -> {"key":
	singleQuoteKeyRegex = regexp.MustCompile(`([{,]\s*)'(\w+)'(\s*:)`)
)

// ExtractAndParseJSON extracts JSON from LLM responses and unmarshals it.
// Uses stream-based decoding to robustly ignore trailing text, and a small
// repair pass for the syntax errors chat models most often produce.
func ExtractAndParseJSON[T any](response string) (T, error) {
	var result T

	cleaned := cleanLLMResponse(response)
	if cleaned == "" {
		return result, fmt.Errorf("no JSON found in response")
	}

	idx := strings.IndexAny(cleaned, "{[")
	if idx == -1 {
		return result, fmt.Errorf("no JSON start ({ or [) found")
	}

	// Decoder parses a single JSON value and ignores anything after it,
	// e.g. {"a":1} followed by trailing prose.
	jsonPart := cleaned[idx:]
	decoder := json.NewDecoder(strings.NewReader(jsonPart))
	if err := decoder.Decode(&result); err != nil {
		repaired := repairJSON(jsonPart)
		if repaired != jsonPart {
			dec2 := json.NewDecoder(strings.NewReader(repaired))
			if err2 := dec2.Decode(&result); err2 == nil {
				return result, nil
			}
		}
		return result, fmt.Errorf("parse JSON: %w", err)
	}

	return result, nil
}

// repairJSON fixes trailing commas and single-quoted keys.
func repairJSON(input string) string {
	out := trailingCommaRegex.ReplaceAllString(input, "$1")
	out = singleQuoteKeyRegex.ReplaceAllString(out, `$1"$2"$3`)
	return out
}

// cleanLLMResponse strips markdown code fences and surrounding prose.
func cleanLLMResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if start := strings.Index(cleaned, "```"); start != -1 {
		rest := cleaned[start+3:]
		// Skip an optional language tag on the fence line
		if nl := strings.IndexByte(rest, '\n'); nl != -1 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end != -1 {
			cleaned = strings.TrimSpace(rest[:end])
		}
	}

	return cleaned
}
