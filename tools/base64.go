/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package tools

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"unicode/utf8"
)

// encryptHandler encodes input "text" to base64. Empty input is rejected
// rather than silently encoded to "".
func encryptHandler(_ context.Context, input map[string]any) (any, error) {
	text, err := stringParam(input, "text")
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("input text cannot be empty")
	}
	return base64.StdEncoding.EncodeToString([]byte(text)), nil
}

// decryptHandler decodes base64 input "text". Payloads that are not valid
// UTF-8 are returned hex-encoded instead of as a mangled string.
func decryptHandler(_ context.Context, input map[string]any) (any, error) {
	encoded, err := stringParam(input, "text")
	if err != nil {
		return nil, err
	}
	if encoded == "" {
		return nil, fmt.Errorf("input text cannot be empty")
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 input: %w", err)
	}
	if !utf8.Valid(raw) {
		return hex.EncodeToString(raw), nil
	}
	return string(raw), nil
}

// stringParam fetches a required string parameter. The legacy n8n tools
// accepted both "text" and "data" for the payload field.
func stringParam(input map[string]any, key string) (string, error) {
	v, ok := input[key]
	if !ok {
		if alt, found := input["data"]; found {
			v, ok = alt, true
		}
	}
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}
