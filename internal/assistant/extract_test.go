package assistant

import (
	"strings"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr string
	}{
		{
			name: "clean object",
			raw:  `{"function": "respond_conversationally", "args": {"response": "hi"}}`,
			want: `{"function": "respond_conversationally", "args": {"response": "hi"}}`,
		},
		{
			name: "surrounded by commentary",
			raw:  `Sure! {"function": "x", "args": {"a": 1}} thanks`,
			want: `{"function": "x", "args": {"a": 1}}`,
		},
		{
			name: "braces inside string literals",
			raw:  `{"function": "execute_sql_query", "args": {"query": "SELECT '{' || '}' AS b"}}`,
			want: `{"function": "execute_sql_query", "args": {"query": "SELECT '{' || '}' AS b"}}`,
		},
		{
			name: "escaped quote inside string",
			raw:  `{"args": {"response_text": "she said \"}\" loudly"}}`,
			want: `{"args": {"response_text": "she said \"}\" loudly"}}`,
		},
		{
			name:    "no object at all",
			raw:     "I cannot help with that.",
			wantErr: "no JSON object found",
		},
		{
			name:    "truncated object",
			raw:     `{"function": "x", "args": {"a": 1}`,
			wantErr: "unbalanced",
		},
		{
			name:    "balanced but invalid",
			raw:     `{function: x}`,
			wantErr: "not valid JSON",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONObject(tt.raw)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorPayloadEscaping(t *testing.T) {
	got := errorPayload(`connection "refused"` + "\n")
	if got != `{"error":"connection \"refused\"\n"}` {
		t.Errorf("payload = %s", got)
	}
}
