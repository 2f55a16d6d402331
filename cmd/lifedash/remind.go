package main

import (
	"fmt"
	"strings"
	"time"

	"lifedash/internal/notify"
	"lifedash/internal/render"

	"github.com/spf13/cobra"
)

func remindCmd() *cobra.Command {
	var days int
	var viaTelegram bool
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Report documents expiring soon, optionally via Telegram",
		Long:  "Checks for documents expiring within the window and prints a reminder. With --telegram, the reminder is also pushed to the configured chat; run it from cron for scheduled alerts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			horizon := time.Now().AddDate(0, 0, days).Format("2006-01-02")
			docs, err := st.DocumentsExpiringBefore(cmd.Context(), horizon)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Printf("Nothing expires within %d days.\n", days)
				return nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "*Document expiry reminder*\n%d document(s) expire within %d days:\n", len(docs), days)
			for _, d := range docs {
				fmt.Fprintf(&b, "- %s: %s\n", d.Name, d.ExpiryDate)
			}
			message := b.String()
			fmt.Print(render.Yellow(message))

			if !viaTelegram {
				return nil
			}
			if !cfg.Telegram.Enabled || cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
				return fmt.Errorf("telegram is not configured; set telegram.enabled, telegram.token, and telegram.chatId")
			}
			tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
			if err != nil {
				return err
			}
			if err := tg.Send(message); err != nil {
				return err
			}
			logger.Info("reminder sent", "documents", len(docs), "chat_id", cfg.Telegram.ChatID)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "look-ahead window in days")
	cmd.Flags().BoolVar(&viaTelegram, "telegram", false, "also push the reminder to Telegram")
	return cmd
}
