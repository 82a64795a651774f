/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package tools

import (
	"context"
	"strings"
	"testing"
)

func TestEncryptDecrypt(t *testing.T) {
	tests := []struct {
		name    string
		tool    string
		input   map[string]any
		want    any
		wantErr bool
	}{
		{
			name:  "encrypt ascii",
			tool:  "encrypt",
			input: map[string]any{"text": "11265"},
			want:  "MTEyNjU=",
		},
		{
			name:  "encrypt accepts data alias",
			tool:  "encrypt",
			input: map[string]any{"data": "hello"},
			want:  "aGVsbG8=",
		},
		{
			name:    "encrypt empty text",
			tool:    "encrypt",
			input:   map[string]any{"text": ""},
			wantErr: true,
		},
		{
			name:    "encrypt missing parameter",
			tool:    "encrypt",
			input:   map[string]any{},
			wantErr: true,
		},
		{
			name:    "encrypt non-string",
			tool:    "encrypt",
			input:   map[string]any{"text": 42.0},
			wantErr: true,
		},
		{
			name:  "decrypt round trip",
			tool:  "decrypt",
			input: map[string]any{"text": "aGVsbG8gd29ybGQ="},
			want:  "hello world",
		},
		{
			name:    "decrypt invalid base64",
			tool:    "decrypt",
			input:   map[string]any{"text": "not base64!!"},
			wantErr: true,
		},
		{
			name: "decrypt binary payload falls back to hex",
			tool: "decrypt",
			// base64 of 0xff 0xfe, not valid UTF-8
			input: map[string]any{"text": "//4="},
			want:  "fffe",
		},
	}

	inv := NewLocalInvoker()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inv.Invoke(context.Background(), tt.tool, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Invoke(%s) succeeded with %v, want error", tt.tool, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Invoke(%s) error: %v", tt.tool, err)
			}
			if got != tt.want {
				t.Errorf("Invoke(%s) = %v, want %v", tt.tool, got, tt.want)
			}
		})
	}
}

func TestCalculator(t *testing.T) {
	tests := []struct {
		name    string
		tool    string
		input   map[string]any
		want    float64
		wantErr bool
	}{
		{name: "add", tool: "add", input: map[string]any{"a": 10944.0, "b": 321.0}, want: 11265},
		{name: "subtract", tool: "subtract", input: map[string]any{"a": 10.0, "b": 4.0}, want: 6},
		{name: "multiply", tool: "multiply", input: map[string]any{"a": 342.0, "b": 32.0}, want: 10944},
		{name: "divide", tool: "divide", input: map[string]any{"a": 9.0, "b": 3.0}, want: 3},
		{name: "divide by zero", tool: "divide", input: map[string]any{"a": 9.0, "b": 0.0}, wantErr: true},
		{name: "modulo", tool: "modulo", input: map[string]any{"a": 10.0, "b": 3.0}, want: 1},
		{name: "modulo takes the divisor's sign", tool: "modulo", input: map[string]any{"a": -7.0, "b": 3.0}, want: 2},
		{name: "modulo by zero", tool: "modulo", input: map[string]any{"a": 10.0, "b": 0.0}, wantErr: true},
		{name: "string coercion", tool: "add", input: map[string]any{"a": "2", "b": "3.5"}, want: 5.5},
		{name: "int coercion", tool: "add", input: map[string]any{"a": 2, "b": int64(3)}, want: 5},
		{name: "missing b", tool: "add", input: map[string]any{"a": 1.0}, wantErr: true},
		{name: "non-numeric", tool: "add", input: map[string]any{"a": true, "b": 1.0}, wantErr: true},
		{name: "bad number string", tool: "add", input: map[string]any{"a": "abc", "b": 1.0}, wantErr: true},
	}

	inv := NewLocalInvoker()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inv.Invoke(context.Background(), tt.tool, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Invoke(%s) succeeded with %v, want error", tt.tool, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Invoke(%s) error: %v", tt.tool, err)
			}
			if got != tt.want {
				t.Errorf("Invoke(%s) = %v, want %v", tt.tool, got, tt.want)
			}
		})
	}
}

func TestLocalInvoker_UnknownTool(t *testing.T) {
	inv := NewLocalInvoker()
	_, err := inv.Invoke(context.Background(), "teleport", nil)
	if err == nil || !strings.Contains(err.Error(), "unknown tool") {
		t.Errorf("Invoke(teleport) error = %v, want unknown tool", err)
	}
}

func TestLocalInvoker_ToolsSorted(t *testing.T) {
	names := []string{}
	for _, tool := range NewLocalInvoker().Tools() {
		names = append(names, tool.Name)
	}
	want := []string{"add", "decrypt", "divide", "encrypt", "modulo", "multiply", "subtract"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Tools() order = %v, want %v", names, want)
	}
}
