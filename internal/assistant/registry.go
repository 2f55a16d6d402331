package assistant

import (
	"context"
	"log/slog"

	"lifedash/internal/domain"
)

// Store is the data surface the assistant's tools run against.
type Store interface {
	Query(ctx context.Context, query string, params ...any) (columns []string, rows [][]any, err error)
	SalarySettings(ctx context.Context) (domain.SalarySettings, error)
	DocumentsExpiring(ctx context.Context, year, month int) ([]domain.Document, error)
}

// ToolSpec describes one whitelisted operation the model may request. The
// description is the only channel through which the model learns when to pick
// the tool, so it is part of the protocol, not documentation.
type ToolSpec struct {
	Name        string
	Description string
	Schema      Schema
	Run         func(ctx context.Context, args map[string]any) (string, error)
}

// Registry is the closed set of tools. It is built once at construction and
// never mutated afterwards; the set of names is the dispatcher's entire
// trusted execution surface.
type Registry struct {
	tools  map[string]*ToolSpec
	order  []string
	logger *slog.Logger
}

// NewRegistry wires the fixed tool set against the given store. Adding a tool
// is a code change here, never runtime registration.
func NewRegistry(store Store, currency string, logger *slog.Logger) *Registry {
	r := &Registry{
		tools:  make(map[string]*ToolSpec),
		logger: logger,
	}
	r.add(conversationTool())
	r.add(salaryAllowanceTool(store, currency))
	r.add(documentExpiryTool(store))
	r.add(sqlQueryTool(store))
	return r
}

func (r *Registry) add(t *ToolSpec) {
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	r.logger.Debug("registered tool", "name", t.Name)
}

// Lookup returns the spec for name, or false when the name is outside the
// whitelist.
func (r *Registry) Lookup(name string) (*ToolSpec, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Specs returns all tools in registration order, for deterministic prompts.
func (r *Registry) Specs() []*ToolSpec {
	out := make([]*ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}
