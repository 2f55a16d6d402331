package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lifedash/internal/domain"
)

// ReplyKind tags how a reply should be presented.
type ReplyKind int

const (
	// KindChat is a direct conversational answer with no data behind it.
	KindChat ReplyKind = iota
	// KindAnswer is a summarized answer grounded in tracker data.
	KindAnswer
	// KindError is a pipeline abort or a failed data lookup.
	KindError
)

// Reply is the final user-facing outcome of one request.
type Reply struct {
	Text string
	Kind ReplyKind
}

func errorReply(format string, args ...any) Reply {
	return Reply{Text: fmt.Sprintf(format, args...), Kind: KindError}
}

// Options tunes the two generation passes.
type Options struct {
	ProposalMaxTokens  int
	SummaryMaxTokens   int
	Temperature        float64
	SummaryTemperature float64
}

// proposal is the JSON object the model must emit on the first pass. Models
// drift between "args" and "arguments", and small ones sometimes flatten the
// conversational reply into "response", so all three shapes are accepted.
type proposal struct {
	Function  string         `json:"function"`
	Args      map[string]any `json:"args"`
	Arguments map[string]any `json:"arguments"`
	Response  string         `json:"response"`
	Error     string         `json:"error"`
}

func (p *proposal) arguments() map[string]any {
	switch {
	case p.Args != nil:
		return p.Args
	case p.Arguments != nil:
		return p.Arguments
	case p.Function == toolConversation && p.Response != "":
		return map[string]any{"response": p.Response}
	default:
		return map[string]any{}
	}
}

var proposalStops = []string{"\n---", "None"}

var summaryStops = []string{"User asked:", "JSON data:", "CRITICAL INSTRUCTIONS:"}

const summaryFallback = "I'm sorry, I retrieved the data but could not put together a summary. Please try rephrasing your question."

// Pipeline turns a natural-language request into a tool call and a reply.
// Every request moves through propose, parse, validate, execute, and, for
// data tools, summarize; any failure before execute aborts without touching
// the store.
type Pipeline struct {
	gen      domain.Generator
	registry *Registry
	prompts  *PromptBuilder
	logger   *slog.Logger
	opts     Options

	now func() time.Time // stubbed in tests
}

func NewPipeline(gen domain.Generator, registry *Registry, logger *slog.Logger, opts Options) *Pipeline {
	return &Pipeline{
		gen:      gen,
		registry: registry,
		prompts:  NewPromptBuilder(registry),
		logger:   logger,
		opts:     opts,
		now:      time.Now,
	}
}

// Handle runs one request end to end. The returned reply is always safe to
// show the user; errors are folded into KindError replies rather than
// propagated, since a failed request still deserves a sentence.
func (p *Pipeline) Handle(ctx context.Context, query string, history []domain.Turn) Reply {
	now := p.now()
	prompt := p.prompts.BuildProposal(query, history, now)

	resp, err := p.gen.Generate(ctx, domain.GenerateRequest{
		Prompt:      prompt,
		MaxTokens:   p.opts.ProposalMaxTokens,
		Stop:        proposalStops,
		Temperature: p.opts.Temperature,
	})
	if err != nil {
		p.logger.Error("proposal generation failed", "error", err)
		return errorReply("Error from LLM generation: %v", err)
	}

	raw := resp.Text()
	p.logger.Debug("proposal received", "raw", raw)

	extracted, err := extractJSONObject(raw)
	if err != nil {
		p.logger.Warn("no tool call in model output", "error", err, "raw", raw)
		return errorReply("Error: the model did not produce a valid tool call (%v).", err)
	}

	var prop proposal
	if err := json.Unmarshal([]byte(extracted), &prop); err != nil {
		return errorReply("Error: the model's tool call could not be parsed (%v).", err)
	}
	if prop.Error != "" {
		return errorReply("Error: %s", prop.Error)
	}
	if prop.Function == "" {
		return errorReply("Error: the model's tool call names no function. Execution is blocked.")
	}

	spec, ok := p.registry.Lookup(prop.Function)
	if !ok {
		p.logger.Warn("blocked non-whitelisted tool", "function", prop.Function)
		return errorReply("Error: function %q is not a whitelisted tool. Execution is blocked.", prop.Function)
	}

	validated, err := spec.Schema.Validate(prop.arguments())
	if err != nil {
		p.logger.Warn("argument validation failed", "function", spec.Name, "error", err)
		return errorReply("Error: invalid arguments for %s: %v. Execution is blocked.", spec.Name, err)
	}

	// Date placeholders only ever appear in generated SQL. They are expanded
	// after validation, so validation always sees the model's literal output.
	summaryContext := fmt.Sprintf("Querying %s.", spec.Name)
	if spec.Name == toolSQLQuery {
		if q, ok := validated["query"].(string); ok {
			resolved := ResolvePlaceholders(q, now)
			validated["query"] = resolved
			summaryContext = "SQL Query: " + resolved
		}
	}

	result, err := p.execute(ctx, spec, validated)
	if err != nil {
		p.logger.Error("tool execution failed", "function", spec.Name, "error", err)
		return errorReply("Error executing %s: %v", spec.Name, err)
	}
	p.logger.Info("tool executed", "function", spec.Name)

	switch spec.Name {
	case toolConversation:
		return Reply{Text: result, Kind: KindChat}
	case toolSQLQuery:
		// Only structured query results get the second pass; the other tools
		// already produce a sentence.
		return p.summarize(ctx, summaryContext, result)
	default:
		return Reply{Text: result, Kind: KindAnswer}
	}
}

// execute runs the tool with panic recovery. A panicking tool must degrade to
// an error reply, not take the whole process down.
func (p *Pipeline) execute(ctx context.Context, spec *ToolSpec, args map[string]any) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return spec.Run(ctx, args)
}

// summarize runs the second pass, turning a structured tool result into a
// conversational answer. A summarization failure degrades to a fixed apology
// rather than surfacing raw JSON.
func (p *Pipeline) summarize(ctx context.Context, contextText, result string) Reply {
	kind := KindAnswer
	if envelopeStatus(result) == statusError {
		kind = KindError
	}

	prompt := p.prompts.BuildSummary(contextText, result)
	resp, err := p.gen.Generate(ctx, domain.GenerateRequest{
		Prompt:      prompt,
		MaxTokens:   p.opts.SummaryMaxTokens,
		Stop:        summaryStops,
		Temperature: p.opts.SummaryTemperature,
	})
	if err != nil {
		p.logger.Error("summary generation failed", "error", err)
		return Reply{Text: summaryFallback, Kind: KindError}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Reply{Text: summaryFallback, Kind: KindError}
	}
	return Reply{Text: text, Kind: kind}
}

// envelopeStatus pulls the status field out of a tool result when the result
// is a query envelope. Plain-text results report no status.
func envelopeStatus(result string) string {
	var env struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(result), &env); err != nil {
		return ""
	}
	return env.Status
}
