package main

import (
	"fmt"
	"strconv"
	"time"

	"lifedash/internal/domain"
	"lifedash/internal/render"

	"github.com/spf13/cobra"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Track daily expenses",
	}
	cmd.AddCommand(expenseAddCmd())
	cmd.AddCommand(expenseListCmd())
	cmd.AddCommand(expenseTotalCmd())
	return cmd
}

func expenseAddCmd() *cobra.Command {
	var date, category, note string
	cmd := &cobra.Command{
		Use:   "add [amount]",
		Short: "Record an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[0])
			}
			if amount <= 0 {
				return fmt.Errorf("amount must be positive")
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			e := domain.Expense{Date: date, Category: category, Description: note, Amount: amount}
			if err := st.AddExpense(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Printf("Recorded %s on %s (%s)\n", render.Currency(cfg.General.Currency, amount), date, category)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "expense date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&category, "category", "g", "misc", "category, e.g. food, transport")
	cmd.Flags().StringVarP(&note, "note", "n", "", "free-form description")
	return cmd
}

func expenseListCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses for a month with the running total",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if month == "" {
				month = time.Now().Format("2006-01")
			}
			if _, err := time.Parse("2006-01", month); err != nil {
				return fmt.Errorf("month must be YYYY-MM: %w", err)
			}

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			expenses, err := st.ListExpenses(cmd.Context(), month)
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				fmt.Printf("No expenses recorded for %s.\n", month)
				return nil
			}

			rows := make([][]string, 0, len(expenses))
			for _, e := range expenses {
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10),
					e.Date,
					e.Category,
					render.Currency(cfg.General.Currency, e.Amount),
					e.Description,
				})
			}
			fmt.Print(render.Table([]string{"ID", "Date", "Category", "Amount", "Note"}, rows))

			total, err := st.ExpenseTotal(cmd.Context(), month)
			if err != nil {
				return err
			}
			fmt.Printf("Total for %s: %s\n", month, render.Currency(cfg.General.Currency, total))
			return nil
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "month YYYY-MM (default: current)")
	return cmd
}

func expenseTotalCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "total",
		Short: "Show the total spend for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if month == "" {
				month = time.Now().Format("2006-01")
			}
			if _, err := time.Parse("2006-01", month); err != nil {
				return fmt.Errorf("month must be YYYY-MM: %w", err)
			}

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			total, err := st.ExpenseTotal(cmd.Context(), month)
			if err != nil {
				return err
			}
			fmt.Printf("Total for %s: %s\n", month, render.Currency(cfg.General.Currency, total))
			return nil
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "month YYYY-MM (default: current)")
	return cmd
}
