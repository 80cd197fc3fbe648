package utils

import (
	"encoding/json"
	"testing"
)

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, false},
		{"prose wrapped", "Sure, here you go:\n{\"a\":1}\nHope that helps!", `{"a":1}`, false},
		{"markdown fence", "```json\n{\"a\": {\"b\": 2}}\n```", `{"a": {"b": 2}}`, false},
		{"nested objects", `x {"outer":{"inner":"}"}} y`, `{"outer":{"inner":"}"}}`, false},
		{"brace inside string", `{"text":"a { b } c"}`, `{"text":"a { b } c"}`, false},
		{"escaped quote", `{"text":"say \"{\" loudly"}`, `{"text":"say \"{\" loudly"}`, false},
		{"no object", "plain prose with no braces", "", true},
		{"unbalanced", `{"a":1`, "", true},
		{"empty input", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := FirstJSONObject(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", result)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
			if !json.Valid([]byte(result)) {
				t.Errorf("extracted text is not valid JSON: %q", result)
			}
		})
	}
}
