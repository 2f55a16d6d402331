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

func salaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Salary settings and overseas allowance",
	}
	cmd.AddCommand(salarySetupCmd())
	cmd.AddCommand(salaryAllowanceCmd())
	cmd.AddCommand(salaryHistoryCmd())
	return cmd
}

func salarySetupCmd() *cobra.Command {
	var base, fiscalDays, rate float64
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Configure base salary, fiscal days, and overseas rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if base <= 0 || fiscalDays <= 0 {
				return fmt.Errorf("base salary and fiscal days must be positive")
			}
			if rate < 0 || rate > 100 {
				return fmt.Errorf("overseas rate must be a percentage between 0 and 100")
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			settings := domain.SalarySettings{
				MonthlyBase:     base,
				TotalFiscalDays: fiscalDays,
				OverseasRatePct: rate,
			}
			if err := st.SaveSalarySettings(cmd.Context(), settings); err != nil {
				return err
			}
			fmt.Printf("Salary settings saved: base %s over %.0f fiscal days, overseas rate %.0f%%\n",
				render.Currency(cfg.General.Currency, base), fiscalDays, rate)
			return nil
		},
	}
	cmd.Flags().Float64Var(&base, "base", 0, "monthly base salary (required)")
	cmd.Flags().Float64Var(&fiscalDays, "fiscal-days", 22, "working days per month")
	cmd.Flags().Float64Var(&rate, "rate", 20, "overseas allowance rate, percent of daily rate")
	cmd.MarkFlagRequired("base")
	return cmd
}

func salaryAllowanceCmd() *cobra.Command {
	var overseas, overtime float64
	var start, end string
	var log bool
	cmd := &cobra.Command{
		Use:   "allowance",
		Short: "Compute overseas allowance and overtime pay",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if overseas < 0 || overtime < 0 {
				return fmt.Errorf("day counts cannot be negative")
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			settings, err := st.SalarySettings(cmd.Context())
			if err != nil {
				return err
			}

			allowance, overtimePay := finance.Allowance(
				settings.MonthlyBase, settings.TotalFiscalDays, overseas, overtime, settings.OverseasRatePct)
			total := allowance + overtimePay

			fmt.Printf("Overseas allowance (%.1f days): %s\n", overseas, render.Currency(cfg.General.Currency, allowance))
			fmt.Printf("Overtime pay (%.1f days):       %s\n", overtime, render.Currency(cfg.General.Currency, overtimePay))
			fmt.Printf("Total extra:                   %s\n", render.Green(render.Currency(cfg.General.Currency, total)))

			if log {
				entry := domain.AllowanceLog{
					Date:            time.Now().Format("2006-01-02"),
					StartDate:       start,
					EndDate:         end,
					OverseasDays:    overseas,
					OvertimeDays:    overtime,
					AllowanceAmount: allowance,
					OvertimeAmount:  overtimePay,
					TotalEarned:     total,
				}
				if err := st.LogAllowance(cmd.Context(), entry); err != nil {
					return err
				}
				fmt.Println("Logged to allowance history.")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&overseas, "overseas", 0, "overseas days worked")
	cmd.Flags().Float64Var(&overtime, "overtime", 0, "overtime days worked")
	cmd.Flags().StringVar(&start, "from", "", "period start YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "to", "", "period end YYYY-MM-DD")
	cmd.Flags().BoolVar(&log, "log", false, "record the computed round in history")
	return cmd
}

func salaryHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show logged allowance rounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			logs, err := st.ListAllowances(cmd.Context())
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				fmt.Println("No allowance rounds logged.")
				return nil
			}
			rows := make([][]string, 0, len(logs))
			for _, a := range logs {
				rows = append(rows, []string{
					strconv.FormatInt(a.ID, 10),
					a.Date,
					fmt.Sprintf("%.1f", a.OverseasDays),
					fmt.Sprintf("%.1f", a.OvertimeDays),
					render.Currency(cfg.General.Currency, a.TotalEarned),
				})
			}
			fmt.Print(render.Table([]string{"ID", "Date", "Overseas", "Overtime", "Total"}, rows))
			return nil
		},
	}
}
