package main

import (
	"fmt"
	"strconv"
	"strings"

	"lifedash/internal/render"

	"github.com/spf13/cobra"
)

func taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Track to-do items",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [text...]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			text := strings.Join(args, " ")
			if err := st.AddTask(cmd.Context(), text); err != nil {
				return err
			}
			fmt.Printf("Added: %s\n", text)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "done [id]",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("task id %q is not a number", args[0])
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.CompleteTask(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Task %d done.\n", id)
			return nil
		},
	})

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			tasks, err := st.ListTasks(cmd.Context(), all)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("Nothing to do.")
				return nil
			}
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				status := render.Yellow("open")
				if t.Done {
					status = render.Green("done")
				}
				rows = append(rows, []string{strconv.FormatInt(t.ID, 10), status, t.Task})
			}
			fmt.Print(render.Table([]string{"ID", "Status", "Task"}, rows))
			return nil
		},
	}
	list.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")
	cmd.AddCommand(list)

	return cmd
}
