package provider

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"lifedash/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestLlamaGenerate(t *testing.T) {
	var gotBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		buf, _ := io.ReadAll(r.Body)
		gotBody.Store(string(buf))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"text": "{\"function\": \"respond_conversationally\", \"response\": \"Hello!\"}"}]}`))
	}))
	defer srv.Close()

	l := NewLlamaWithClient(LlamaConfig{APIBase: srv.URL, Logger: testLogger()}, srv.Client())

	resp, err := l.Generate(context.Background(), domain.GenerateRequest{
		Prompt:    "hi",
		MaxTokens: 128,
		Stop:      []string{"\n---"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text() == "" {
		t.Fatal("expected non-empty text")
	}

	body, _ := gotBody.Load().(string)
	for _, want := range []string{`"prompt":"hi"`, `"max_tokens":128`, `"stop":["\n---"]`} {
		if !strings.Contains(body, want) {
			t.Errorf("request body missing %s: %s", want, body)
		}
	}
}

func TestLlamaGenerateClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "bad request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	l := NewLlamaWithClient(LlamaConfig{APIBase: srv.URL, Logger: testLogger()}, srv.Client())

	// 4xx errors must not be retried.
	_, err := l.Generate(context.Background(), domain.GenerateRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error on 400 response")
	}
}

func TestLlamaHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	l := NewLlamaWithClient(LlamaConfig{APIBase: srv.URL, Logger: testLogger()}, srv.Client())
	if err := l.Healthy(context.Background()); err != nil {
		t.Fatalf("expected healthy, got: %v", err)
	}
}

func TestResponseTextEmpty(t *testing.T) {
	var r *domain.GenerateResponse
	if r.Text() != "" {
		t.Error("nil response should yield empty text")
	}
	if (&domain.GenerateResponse{}).Text() != "" {
		t.Error("empty choices should yield empty text")
	}
}
