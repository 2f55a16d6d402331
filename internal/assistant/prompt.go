package assistant

import (
	"fmt"
	"strings"
	"time"

	"lifedash/internal/domain"
)

// PromptBuilder assembles the two prompts the pipeline sends to the model.
// Both are pure functions of their inputs and the reference time, so prompts
// are reproducible for a fixed date and history.
type PromptBuilder struct {
	registry *Registry
}

func NewPromptBuilder(registry *Registry) *PromptBuilder {
	return &PromptBuilder{registry: registry}
}

// BuildProposal produces the tool-selection prompt: system instruction with
// the current date and the analysis-priority rule, the full tool catalog, the
// trailing conversation history, the user request, and the JSON-start cue.
func (b *PromptBuilder) BuildProposal(query string, history []domain.Turn, now time.Time) string {
	currentDate := now.Format("2006-01-02")
	currentYear := now.Format("2006")
	currentMonth := now.Format("01")

	var tools []string
	for _, spec := range b.registry.Specs() {
		tools = append(tools, fmt.Sprintf(
			"Tool Name: %s\nDescription: %s\nJSON Schema: %s",
			spec.Name, spec.Description, spec.Schema.promptJSON(),
		))
	}

	var historyBlock string
	if len(history) > 0 {
		var hb strings.Builder
		hb.WriteString("--- CONVERSATION HISTORY ---\n")
		for _, turn := range history {
			hb.WriteString(titleRole(turn.Role))
			hb.WriteString(": ")
			hb.WriteString(turn.Content)
			hb.WriteByte('\n')
		}
		hb.WriteString("--------------------------\n")
		historyBlock = hb.String()
	}

	system := fmt.Sprintf(
		"You are an intelligent, low-latency function-calling engine. "+
			"The current date is **%s**. The CURRENT YEAR is **%s**. The CURRENT MONTH is **%s** (MM format). "+
			"PRIORITY: for any queries involving **analysis** (e.g. 'total', 'sum', 'average', 'highest', 'month', or calculations), you MUST use the **'%s' tool**. The correct table must be selected from the tool description. "+
			"Analyze the user's request, select the single appropriate tool, and generate ONLY the JSON call. "+
			"Your response MUST start immediately with '{\"function\":...}' (use double quotes for all keys/strings). "+
			"If the query is a simple greeting or non-contextual question, use the '%s' tool. "+
			"DO NOT include newlines or leading spaces before the JSON output.",
		currentDate, currentYear, currentMonth, toolSQLQuery, toolConversation,
	)

	return fmt.Sprintf(
		"--- SYSTEM INSTRUCTION ---\n%s\n\n--- AVAILABLE TOOLS ---\n%s\n\n%s--- USER REQUEST ---\n%s\n\n--- JSON OUTPUT (STARTING WITH {) ---\n",
		system, strings.Join(tools, "\n---\n"), historyBlock, query,
	)
}

// BuildSummary produces the second-pass prompt converting a structured query
// result into a conversational explanation. Error envelopes get a distinct
// instruction so the model names the likely mistake instead of pretending the
// lookup worked.
func (b *PromptBuilder) BuildSummary(contextText, rawResultJSON string) string {
	return fmt.Sprintf(
		"You are a helpful and supportive data analyst. "+
			"The user's original request was: '%s'. "+
			"The database operation returned the following JSON result: '%s'. "+
			"Your primary task is to summarize the outcome conversationally for the user. "+
			"**CRITICAL INSTRUCTIONS:** "+
			"1. **Success/No Results:** Summarize data clearly, using $X.YY for money and explicitly stating units (e.g. '5 days'). "+
			"2. **Error Handling:** If the 'status' is 'error', analyze the 'message' field (e.g. 'no such column'). Explain the error simply (e.g. 'It looks like the column name was misspelled') and ask the user to rephrase their original request, referencing the potential mistake. "+
			"3. **Tone:** Be concise, supportive, and avoid technical jargon. "+
			"Output ONLY the final conversational summary.",
		contextText, rawResultJSON,
	)
}

func titleRole(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}
