package main

import (
	"fmt"
	"strconv"
	"time"

	"lifedash/internal/domain"
	"lifedash/internal/finance"
	"lifedash/internal/render"

	"github.com/spf13/cobra"
)

func loanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Track loans and repayments",
	}
	cmd.AddCommand(loanAddCmd())
	cmd.AddCommand(loanListCmd())
	cmd.AddCommand(loanPayCmd())
	cmd.AddCommand(loanShowCmd())
	return cmd
}

func loanAddCmd() *cobra.Command {
	var total, monthly float64
	var start string
	var months, dueDay int
	cmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Register a loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if total <= 0 || monthly <= 0 {
				return fmt.Errorf("total and monthly amounts must be positive")
			}
			if start == "" {
				start = time.Now().Format("2006-01-02")
			}
			if _, err := time.Parse("2006-01-02", start); err != nil {
				return fmt.Errorf("start date must be YYYY-MM-DD: %w", err)
			}
			if dueDay < 0 || dueDay > 31 {
				return fmt.Errorf("due day must be between 1 and 31")
			}

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			l := domain.Loan{
				Description:    args[0],
				TotalAmount:    total,
				MonthlyPayment: monthly,
				StartDate:      start,
				DurationMonths: months,
				DueDay:         dueDay,
			}
			id, err := st.AddLoan(cmd.Context(), l)
			if err != nil {
				return err
			}
			fmt.Printf("Loan #%d registered: %s, %s total, %s/month\n",
				id, l.Description,
				render.Currency(cfg.General.Currency, total),
				render.Currency(cfg.General.Currency, monthly))
			return nil
		},
	}
	cmd.Flags().Float64Var(&total, "total", 0, "total amount owed (required)")
	cmd.Flags().Float64Var(&monthly, "monthly", 0, "monthly payment (required)")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&months, "months", 0, "planned duration in months")
	cmd.Flags().IntVar(&dueDay, "due-day", 0, "day of month the payment is due")
	cmd.MarkFlagRequired("total")
	cmd.MarkFlagRequired("monthly")
	return cmd
}

func loanListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"status"},
		Short:   "List loans with remaining balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			loans, err := st.ListLoans(cmd.Context())
			if err != nil {
				return err
			}
			if len(loans) == 0 {
				fmt.Println("No loans registered.")
				return nil
			}

			rows := make([][]string, 0, len(loans))
			for _, l := range loans {
				paid, err := st.LoanPaid(cmd.Context(), l.ID)
				if err != nil {
					return err
				}
				balance := finance.LoanBalance(l.TotalAmount, paid)
				status := render.Yellow(l.Status)
				if l.Status == domain.LoanStatusPaid {
					status = render.Green(l.Status)
				}
				rows = append(rows, []string{
					strconv.FormatInt(l.ID, 10),
					l.Description,
					render.Currency(cfg.General.Currency, l.TotalAmount),
					render.Currency(cfg.General.Currency, balance),
					status,
				})
			}
			fmt.Print(render.Table([]string{"ID", "Description", "Total", "Balance", "Status"}, rows))
			return nil
		},
	}
}

func loanPayCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "pay [id] [amount]",
		Short: "Record a loan payment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("loan id %q is not a number", args[0])
			}
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("amount %q is not a positive number", args[1])
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

			p := domain.LoanPayment{LoanID: id, Date: date, AmountPaid: amount}
			if err := st.AddLoanPayment(cmd.Context(), p); err != nil {
				return err
			}

			loan, err := st.GetLoan(cmd.Context(), id)
			if err != nil {
				return err
			}
			paid, err := st.LoanPaid(cmd.Context(), id)
			if err != nil {
				return err
			}
			balance := finance.LoanBalance(loan.TotalAmount, paid)
			fmt.Printf("Payment of %s recorded for %q. Remaining: %s\n",
				render.Currency(cfg.General.Currency, amount), loan.Description,
				render.Currency(cfg.General.Currency, balance))
			if loan.Status == domain.LoanStatusPaid {
				fmt.Println(render.Green("Loan fully paid off."))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "payment date YYYY-MM-DD (default: today)")
	return cmd
}

func loanShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one loan's payoff projection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("loan id %q is not a number", args[0])
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			loan, err := st.GetLoan(cmd.Context(), id)
			if err != nil {
				return err
			}
			paid, err := st.LoanPaid(cmd.Context(), id)
			if err != nil {
				return err
			}
			balance := finance.LoanBalance(loan.TotalAmount, paid)

			fmt.Printf("%s (%s)\n", loan.Description, loan.Status)
			fmt.Printf("Total:     %s\n", render.Currency(cfg.General.Currency, loan.TotalAmount))
			fmt.Printf("Paid:      %s\n", render.Currency(cfg.General.Currency, paid))
			fmt.Printf("Balance:   %s\n", render.Currency(cfg.General.Currency, balance))
			if balance > 0 && loan.MonthlyPayment > 0 {
				months := finance.MonthsRemaining(balance, loan.MonthlyPayment)
				payoff := finance.PayoffDate(time.Now(), balance, loan.MonthlyPayment)
				fmt.Printf("Remaining: %d month(s), paid off around %s\n", months, payoff.Format("January 2006"))
			}
			return nil
		},
	}
}
