package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"lifedash/internal/domain"
)

const (
	llamaDefaultBase = "http://localhost:8080"
	llamaMaxRetries  = 3
)

// Llama implements domain.Generator against a llama.cpp-compatible completion
// server (POST /v1/completions). The handle is constructed once at startup and
// passed into the assistant; there is no lazy global model state.
type Llama struct {
	apiBase string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

type LlamaConfig struct {
	APIBase string
	Model   string // optional; server default when empty
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewLlama(cfg LlamaConfig) *Llama {
	if cfg.APIBase == "" {
		cfg.APIBase = llamaDefaultBase
	}
	return &Llama{
		apiBase: cfg.APIBase,
		model:   cfg.Model,
		client:  SharedHTTPClient(cfg.Timeout),
		logger:  cfg.Logger,
	}
}

// NewLlamaWithClient is used by tests to inject an httptest client.
func NewLlamaWithClient(cfg LlamaConfig, client *http.Client) *Llama {
	if cfg.APIBase == "" {
		cfg.APIBase = llamaDefaultBase
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Llama{
		apiBase: cfg.APIBase,
		model:   cfg.Model,
		client:  client,
		logger:  cfg.Logger,
	}
}

func (l *Llama) Name() string { return "llama" }

func (l *Llama) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", l.apiBase+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("llama server not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("llama server returned status %d", resp.StatusCode)
	}
	return nil
}

// llamaRequest matches the /v1/completions request body.
type llamaRequest struct {
	Model       string   `json:"model,omitempty"`
	Prompt      string   `json:"prompt"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Stop        []string `json:"stop,omitempty"`
	Temperature float64  `json:"temperature"`
	Stream      bool     `json:"stream"`
}

func (l *Llama) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	body := llamaRequest{
		Model:       l.model,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Stop:        req.Stop,
		Temperature: req.Temperature,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	// Retry logic for transient errors (connection refused, 5xx)
	var out domain.GenerateResponse
	for attempt := 0; attempt <= llamaMaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * time.Second
			l.logger.Warn("retrying llama request", "attempt", attempt+1, "backoff", backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", l.apiBase+"/v1/completions", bytes.NewReader(jsonBody))
		if err != nil {
			return nil, fmt.Errorf("new request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := l.client.Do(httpReq)
		if err != nil {
			if attempt < llamaMaxRetries {
				l.logger.Warn("llama request failed, will retry", "err", err)
				continue
			}
			return nil, fmt.Errorf("llama request (after %d retries): %w", llamaMaxRetries, err)
		}

		if resp.StatusCode >= 500 {
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if attempt < llamaMaxRetries {
				l.logger.Warn("llama server error, will retry", "status", resp.StatusCode, "body", string(respBody))
				continue
			}
			return nil, fmt.Errorf("llama server returned %d (after %d retries): %s", resp.StatusCode, llamaMaxRetries, string(respBody))
		}

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("llama server returned %d: %s", resp.StatusCode, string(respBody))
		}

		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			resp.Body.Close()
			if attempt < llamaMaxRetries {
				l.logger.Warn("llama decode error, will retry", "err", err)
				continue
			}
			return nil, fmt.Errorf("decode response (after %d retries): %w", llamaMaxRetries, err)
		}
		resp.Body.Close()
		break
	}

	return &out, nil
}
