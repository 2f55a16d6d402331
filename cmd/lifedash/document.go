package main

import (
	"fmt"
	"strconv"
	"time"

	"lifedash/internal/domain"
	"lifedash/internal/render"

	"github.com/spf13/cobra"
)

func docCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Track document expiry dates (passport, visa, licenses)",
	}

	var expiry string
	add := &cobra.Command{
		Use:   "add [name]",
		Short: "Track a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if _, err := time.Parse("2006-01-02", expiry); err != nil {
				return fmt.Errorf("expiry must be YYYY-MM-DD: %w", err)
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			d := domain.Document{Name: args[0], ExpiryDate: expiry}
			if err := st.AddDocument(cmd.Context(), d); err != nil {
				return err
			}
			fmt.Printf("Tracking %q, expires %s\n", d.Name, d.ExpiryDate)
			return nil
		},
	}
	add.Flags().StringVarP(&expiry, "expires", "e", "", "expiry date YYYY-MM-DD (required)")
	add.MarkFlagRequired("expires")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tracked documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			docs, err := st.ListDocuments(cmd.Context())
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Println("No documents tracked.")
				return nil
			}

			today := time.Now().Format("2006-01-02")
			rows := make([][]string, 0, len(docs))
			for _, d := range docs {
				exp := d.ExpiryDate
				if exp < today {
					exp = render.Red(exp + " (expired)")
				}
				rows = append(rows, []string{strconv.FormatInt(d.ID, 10), d.Name, exp})
			}
			fmt.Print(render.Table([]string{"ID", "Name", "Expires"}, rows))
			return nil
		},
	})

	return cmd
}
