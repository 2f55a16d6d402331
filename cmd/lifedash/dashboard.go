package main

import (
	"fmt"
	"time"

	"lifedash/internal/domain"
	"lifedash/internal/finance"
	"lifedash/internal/render"

	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "One-screen overview of everything tracked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			ctx := cmd.Context()
			now := time.Now()

			fmt.Println(render.Cyan(fmt.Sprintf("lifedash | %s", now.Format("Monday, 2 January 2006"))))
			fmt.Println()

			month := now.Format("2006-01")
			total, err := st.ExpenseTotal(ctx, month)
			if err != nil {
				return err
			}
			fmt.Printf("Spending this month:  %s\n", render.Currency(cfg.General.Currency, total))

			tasks, err := st.ListTasks(ctx, false)
			if err != nil {
				return err
			}
			fmt.Printf("Open tasks:           %d\n", len(tasks))

			leaveSettings, err := st.LeaveSettings(ctx)
			if err != nil {
				return err
			}
			taken, err := st.LeaveTaken(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Leave remaining:      %.1f day(s)\n", finance.LeaveBalance(leaveSettings.AnnualDays, leaveSettings.CarriedOver, taken))

			loans, err := st.ListLoans(ctx)
			if err != nil {
				return err
			}
			var owed float64
			ongoing := 0
			for _, l := range loans {
				if l.Status != domain.LoanStatusOngoing {
					continue
				}
				paid, err := st.LoanPaid(ctx, l.ID)
				if err != nil {
					return err
				}
				owed += finance.LoanBalance(l.TotalAmount, paid)
				ongoing++
			}
			fmt.Printf("Ongoing loans:        %d (%s owed)\n", ongoing, render.Currency(cfg.General.Currency, owed))

			horizon := now.AddDate(0, 3, 0).Format("2006-01-02")
			docs, err := st.DocumentsExpiringBefore(ctx, horizon)
			if err != nil {
				return err
			}
			if len(docs) > 0 {
				fmt.Println()
				fmt.Println(render.Yellow("Documents expiring within 3 months:"))
				for _, d := range docs {
					line := fmt.Sprintf("  %s expires %s", d.Name, d.ExpiryDate)
					if d.ExpiryDate < now.Format("2006-01-02") {
						line = render.Red(line + " (expired)")
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}
}
