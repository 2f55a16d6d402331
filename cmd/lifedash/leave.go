package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"lifedash/internal/domain"
	"lifedash/internal/finance"
	"lifedash/internal/render"

	"github.com/spf13/cobra"
)

func leaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Track annual leave",
	}
	cmd.AddCommand(leaveLogCmd())
	cmd.AddCommand(leaveBalanceCmd())
	cmd.AddCommand(leaveSetupCmd())
	return cmd
}

func leaveLogCmd() *cobra.Command {
	var date string
	var days float64
	cmd := &cobra.Command{
		Use:   "log [reason...]",
		Short: "Log leave taken",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if days <= 0 {
				return fmt.Errorf("days must be positive")
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

			l := domain.LeaveLog{Date: date, Days: days, Description: strings.Join(args, " ")}
			if err := st.LogLeave(cmd.Context(), l); err != nil {
				return err
			}
			fmt.Printf("Logged %.1f day(s) of leave on %s\n", days, date)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "leave date YYYY-MM-DD (default: today)")
	cmd.Flags().Float64VarP(&days, "days", "n", 1, "days taken (half days allowed)")
	return cmd
}

func leaveBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show remaining leave",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			settings, err := st.LeaveSettings(cmd.Context())
			if err != nil {
				return err
			}
			taken, err := st.LeaveTaken(cmd.Context())
			if err != nil {
				return err
			}
			balance := finance.LeaveBalance(settings.AnnualDays, settings.CarriedOver, taken)

			fmt.Printf("Entitlement: %.1f annual + %.1f carried over\n", settings.AnnualDays, settings.CarriedOver)
			fmt.Printf("Taken:       %.1f day(s)\n", taken)
			line := fmt.Sprintf("Remaining:   %.1f day(s)", balance)
			if balance < 0 {
				line = render.Red(line)
			} else {
				line = render.Green(line)
			}
			fmt.Println(line)

			logs, err := st.ListLeave(cmd.Context())
			if err != nil {
				return err
			}
			if len(logs) > 0 {
				rows := make([][]string, 0, len(logs))
				for _, l := range logs {
					rows = append(rows, []string{strconv.FormatInt(l.ID, 10), l.Date, fmt.Sprintf("%.1f", l.Days), l.Description})
				}
				fmt.Print(render.Table([]string{"ID", "Date", "Days", "Reason"}, rows))
			}
			return nil
		},
	}
}

func leaveSetupCmd() *cobra.Command {
	var annual, carried float64
	var start string
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Configure leave entitlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if annual <= 0 {
				return fmt.Errorf("annual days must be positive")
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			settings := domain.LeaveSettings{AnnualDays: annual, CarriedOver: carried, StartDate: start}
			if err := st.SaveLeaveSettings(cmd.Context(), settings); err != nil {
				return err
			}
			fmt.Printf("Leave entitlement saved: %.1f annual, %.1f carried over\n", annual, carried)
			return nil
		},
	}
	cmd.Flags().Float64Var(&annual, "annual", 12, "annual leave days")
	cmd.Flags().Float64Var(&carried, "carried", 0, "days carried over from last year")
	cmd.Flags().StringVar(&start, "start", "", "entitlement year start date YYYY-MM-DD")
	return cmd
}
