package assistant

import (
	"encoding/json"
	"errors"
	"strings"
)

// extractJSONObject locates the first balanced top-level JSON object in raw
// model output and returns it trimmed. Models often wrap the object in
// commentary or truncate past it, so parsing the whole string is not enough:
// we find the first '{' and scan with a brace-depth counter, skipping brace
// characters inside string literals. The candidate must then pass a strict
// JSON validity check.
func extractJSONObject(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", errors.New("no JSON object found in output")
	}

	depth := 0
	inStr := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inStr {
			if ch == '\\' {
				i++ // skip escaped character
				continue
			}
			if ch == '"' {
				inStr = false
			}
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := strings.TrimSpace(raw[start : i+1])
				if !json.Valid([]byte(candidate)) {
					return "", errors.New("extracted object is not valid JSON")
				}
				return candidate, nil
			}
		}
	}
	return "", errors.New("unbalanced JSON object in output")
}

// errorPayload builds the sentinel {"error": ...} document the generation
// client emits on failure. Marshalling (rather than string concatenation)
// keeps embedded quotes and control characters from corrupting the payload.
func errorPayload(message string) string {
	raw, err := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: message})
	if err != nil {
		return `{"error": "internal error building error payload"}`
	}
	return string(raw)
}
