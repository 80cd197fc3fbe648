package utils

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when no balanced top-level JSON object can be
// located in the input.
var ErrNoJSONObject = errors.New("no JSON object found in text")

// FirstJSONObject extracts the first balanced top-level JSON object from
// free text. Model responses often wrap the requested JSON document in
// prose or markdown fences, so callers cannot unmarshal the raw text
// directly.
func FirstJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}
