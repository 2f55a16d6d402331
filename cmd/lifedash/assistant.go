package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"lifedash/internal/assistant"
	"lifedash/internal/domain"
	"lifedash/internal/render"

	"github.com/spf13/cobra"
)

func assistantCmd() *cobra.Command {
	var oneShot string
	cmd := &cobra.Command{
		Use:     "assistant",
		Aliases: []string{"ask"},
		Short:   "Ask the AI assistant about your data",
		Long:    "Starts an interactive session with the local LLM. Type B (or back, exit) to leave; leaving clears the conversation history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			pipe := newPipeline(cfg, st)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if oneShot != "" {
				reply := pipe.Handle(ctx, oneShot, nil)
				fmt.Println(renderReply(reply))
				return nil
			}

			gen := newGenerator(cfg)
			if err := gen.Healthy(ctx); err != nil {
				fmt.Println(render.Yellow("Warning: the model server is not reachable. Answers will fail until it is up."))
			}

			fmt.Println(render.Cyan("AI Assistant ready. Ask about your expenses, documents, tasks, leave, salary, or loans."))
			fmt.Println(render.Grey("Type B to go back."))

			var history []domain.Turn
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				query := strings.TrimSpace(scanner.Text())
				if query == "" {
					continue
				}
				if isExit(query) {
					// Leaving the session drops the conversation entirely.
					return nil
				}

				reply := pipe.Handle(ctx, query, history)
				fmt.Println(renderReply(reply))

				history = append(history,
					domain.Turn{Role: domain.RoleUser, Content: query},
					domain.Turn{Role: domain.RoleAssistant, Content: reply.Text},
				)
				history = assistant.TrimHistory(history, cfg.Assistant.HistoryTurns)
			}
		},
	}
	cmd.Flags().StringVarP(&oneShot, "query", "q", "", "ask a single question and exit")
	return cmd
}

func isExit(s string) bool {
	switch strings.ToLower(s) {
	case "b", "back", "exit", "quit":
		return true
	}
	return false
}

func renderReply(r assistant.Reply) string {
	switch r.Kind {
	case assistant.KindError:
		return render.Red(r.Text)
	case assistant.KindAnswer:
		return render.Green(r.Text)
	default:
		return r.Text
	}
}
