package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"lifedash/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubGenerator replays scripted completions and records every request.
type stubGenerator struct {
	replies  []string
	errs     []error
	requests []domain.GenerateRequest
}

func (g *stubGenerator) Generate(_ context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	i := len(g.requests)
	g.requests = append(g.requests, req)
	if i < len(g.errs) && g.errs[i] != nil {
		return nil, g.errs[i]
	}
	if i >= len(g.replies) {
		return nil, errors.New("stub exhausted")
	}
	return &domain.GenerateResponse{Choices: []domain.Choice{{Text: g.replies[i]}}}, nil
}

func (g *stubGenerator) Name() string                    { return "stub" }
func (g *stubGenerator) Healthy(_ context.Context) error { return nil }

// stubStore counts data access so tests can assert a blocked call never
// touched the database.
type stubStore struct {
	queryCalls  int
	lastQuery   string
	columns     []string
	rows        [][]any
	queryErr    error
	salaryCalls int
	docCalls    int
}

func (s *stubStore) Query(_ context.Context, query string, _ ...any) ([]string, [][]any, error) {
	s.queryCalls++
	s.lastQuery = query
	if s.queryErr != nil {
		return nil, nil, s.queryErr
	}
	return s.columns, s.rows, nil
}

func (s *stubStore) SalarySettings(_ context.Context) (domain.SalarySettings, error) {
	s.salaryCalls++
	return domain.SalarySettings{MonthlyBase: 5000, TotalFiscalDays: 22, OverseasRatePct: 20}, nil
}

func (s *stubStore) DocumentsExpiring(_ context.Context, _, _ int) ([]domain.Document, error) {
	s.docCalls++
	return nil, nil
}

func newTestPipeline(gen *stubGenerator, store *stubStore) *Pipeline {
	reg := NewRegistry(store, "$", testLogger())
	p := NewPipeline(gen, reg, testLogger(), Options{
		ProposalMaxTokens:  2048,
		SummaryMaxTokens:   512,
		Temperature:        0,
		SummaryTemperature: 0.2,
	})
	p.now = func() time.Time {
		return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	}
	return p
}

func TestHandleConversational(t *testing.T) {
	gen := &stubGenerator{replies: []string{
		`{"function": "respond_conversationally", "args": {"response": "Hello there!"}}`,
	}}
	store := &stubStore{}
	p := newTestPipeline(gen, store)

	reply := p.Handle(context.Background(), "hi", nil)
	if reply.Kind != KindChat {
		t.Fatalf("kind = %v, want KindChat", reply.Kind)
	}
	if reply.Text != "Hello there!" {
		t.Errorf("text = %q", reply.Text)
	}
	if len(gen.requests) != 1 {
		t.Errorf("generate called %d times, want 1", len(gen.requests))
	}
	if store.queryCalls+store.salaryCalls+store.docCalls != 0 {
		t.Errorf("conversational reply touched the store")
	}
}

func TestHandleFlatResponseShape(t *testing.T) {
	gen := &stubGenerator{replies: []string{
		`{"function": "respond_conversationally", "response": "Hi!"}`,
	}}
	p := newTestPipeline(gen, &stubStore{})

	reply := p.Handle(context.Background(), "hello", nil)
	if reply.Kind != KindChat || reply.Text != "Hi!" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestHandleBlocksUnknownTool(t *testing.T) {
	gen := &stubGenerator{replies: []string{
		`{"function": "delete_everything", "args": {}}`,
	}}
	store := &stubStore{}
	p := newTestPipeline(gen, store)

	reply := p.Handle(context.Background(), "wipe it all", nil)
	if reply.Kind != KindError {
		t.Fatalf("kind = %v, want KindError", reply.Kind)
	}
	if !strings.Contains(reply.Text, "not a whitelisted tool") {
		t.Errorf("text = %q", reply.Text)
	}
	if store.queryCalls != 0 {
		t.Errorf("blocked call still reached the store")
	}
	if len(gen.requests) != 1 {
		t.Errorf("generate called %d times, want 1", len(gen.requests))
	}
}

func TestHandleValidationFailureBlocksExecution(t *testing.T) {
	gen := &stubGenerator{replies: []string{
		`{"function": "execute_sql_query", "args": {"table_name": "expenses"}}`,
	}}
	store := &stubStore{}
	p := newTestPipeline(gen, store)

	reply := p.Handle(context.Background(), "total spend", nil)
	if reply.Kind != KindError || !strings.Contains(reply.Text, "invalid arguments") {
		t.Fatalf("reply = %+v", reply)
	}
	if store.queryCalls != 0 {
		t.Errorf("invalid call still reached the store")
	}
}

func TestHandleSQLFlow(t *testing.T) {
	gen := &stubGenerator{replies: []string{
		`{"function": "execute_sql_query", "args": {"query": "SELECT SUM(amount) AS total FROM expenses WHERE SUBSTR(date, 1, 4) = '{{CURRENT_YEAR}}'"}}`,
		"You spent $42.50 this year.",
	}}
	store := &stubStore{columns: []string{"total"}, rows: [][]any{{42.5}}}
	p := newTestPipeline(gen, store)

	reply := p.Handle(context.Background(), "how much did I spend this year?", nil)
	if reply.Kind != KindAnswer {
		t.Fatalf("kind = %v, want KindAnswer: %q", reply.Kind, reply.Text)
	}
	if reply.Text != "You spent $42.50 this year." {
		t.Errorf("text = %q", reply.Text)
	}
	if store.queryCalls != 1 {
		t.Fatalf("store queried %d times, want 1", store.queryCalls)
	}
	if strings.Contains(store.lastQuery, "{{CURRENT_YEAR}}") {
		t.Errorf("placeholder not resolved: %q", store.lastQuery)
	}
	if !strings.Contains(store.lastQuery, "'2025'") {
		t.Errorf("resolved query = %q", store.lastQuery)
	}
	if len(gen.requests) != 2 {
		t.Fatalf("generate called %d times, want 2", len(gen.requests))
	}
	if gen.requests[1].MaxTokens != 512 || gen.requests[1].Temperature != 0.2 {
		t.Errorf("summary request = %+v", gen.requests[1])
	}
}

func TestHandleQueryErrorBecomesErrorReply(t *testing.T) {
	gen := &stubGenerator{replies: []string{
		`{"function": "execute_sql_query", "args": {"query": "SELECT amnt FROM expenses"}}`,
		"It looks like the column name was misspelled. Could you rephrase?",
	}}
	store := &stubStore{queryErr: errors.New("no such column: amnt")}
	p := newTestPipeline(gen, store)

	reply := p.Handle(context.Background(), "sum of amnt", nil)
	if reply.Kind != KindError {
		t.Fatalf("kind = %v, want KindError", reply.Kind)
	}
	if !strings.Contains(reply.Text, "misspelled") {
		t.Errorf("text = %q", reply.Text)
	}
}

func TestHandleSalaryDirectAnswer(t *testing.T) {
	gen := &stubGenerator{replies: []string{
		`{"function": "query_salary_allowance", "arguments": {"days_overseas": 10, "days_overtime": 2}}`,
	}}
	store := &stubStore{}
	p := newTestPipeline(gen, store)

	reply := p.Handle(context.Background(), "allowance for 10 overseas and 2 overtime days", nil)
	if reply.Kind != KindAnswer {
		t.Fatalf("kind = %v, want KindAnswer: %q", reply.Kind, reply.Text)
	}
	if !strings.Contains(reply.Text, "$454.55") {
		t.Errorf("text = %q", reply.Text)
	}
	if len(gen.requests) != 1 {
		t.Errorf("direct tool answer still went through a second pass (%d calls)", len(gen.requests))
	}
	if store.salaryCalls != 1 {
		t.Errorf("salary settings loaded %d times", store.salaryCalls)
	}
}

func TestHandleGenerationFailure(t *testing.T) {
	gen := &stubGenerator{errs: []error{errors.New("connection refused")}}
	p := newTestPipeline(gen, &stubStore{})

	reply := p.Handle(context.Background(), "hi", nil)
	if reply.Kind != KindError || !strings.Contains(reply.Text, "Error from LLM generation") {
		t.Errorf("reply = %+v", reply)
	}
}

func TestHandleGarbageOutput(t *testing.T) {
	gen := &stubGenerator{replies: []string{"I refuse to answer in JSON."}}
	p := newTestPipeline(gen, &stubStore{})

	reply := p.Handle(context.Background(), "hi", nil)
	if reply.Kind != KindError || !strings.Contains(reply.Text, "valid tool call") {
		t.Errorf("reply = %+v", reply)
	}
}

func TestHandleSummaryFailureFallsBack(t *testing.T) {
	gen := &stubGenerator{
		replies: []string{
			`{"function": "execute_sql_query", "args": {"query": "SELECT * FROM tasks"}}`,
		},
		errs: []error{nil, errors.New("timeout")},
	}
	store := &stubStore{columns: []string{"id", "task"}, rows: [][]any{{int64(1), "water plants"}}}
	p := newTestPipeline(gen, store)

	reply := p.Handle(context.Background(), "my tasks", nil)
	if reply.Kind != KindError || reply.Text != summaryFallback {
		t.Errorf("reply = %+v", reply)
	}
}

func TestProposalPromptIncludesHistoryAndCatalog(t *testing.T) {
	gen := &stubGenerator{replies: []string{
		`{"function": "respond_conversationally", "args": {"response": "ok"}}`,
	}}
	p := newTestPipeline(gen, &stubStore{})

	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "hello"},
		{Role: domain.RoleAssistant, Content: "hi, how can I help?"},
	}
	p.Handle(context.Background(), "what can you do?", history)

	prompt := gen.requests[0].Prompt
	for _, want := range []string{
		"2025-06-15",
		"respond_conversationally",
		"query_salary_allowance",
		"query_document_expiry",
		"execute_sql_query",
		"User: hello",
		"Assistant: hi, how can I help?",
		"what can you do?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if gen.requests[0].Stop[0] != "\n---" {
		t.Errorf("stop sequences = %v", gen.requests[0].Stop)
	}
}
