package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tasklyst/backend/domain"
	taskUC "github.com/tasklyst/backend/usecase/task"
)

func newAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.requireUser(cmd.Context())
			if err != nil {
				return err
			}

			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			status, _ := cmd.Flags().GetString("status")
			deadlineRaw, _ := cmd.Flags().GetString("deadline")

			deadline, err := parseDeadline(deadlineRaw)
			if err != nil {
				return err
			}

			task := a.tasks.Add(cmd.Context(), taskUC.Draft{
				UserID:      user.ID,
				Title:       title,
				Description: description,
				Status:      domain.TaskStatus(status),
				Deadline:    deadline,
			})
			printTask(cmd.OutOrStdout(), task)
			return nil
		},
	}
	cmd.Flags().String("title", "", "task title")
	cmd.Flags().String("description", "", "task description")
	cmd.Flags().String("status", string(domain.StatusTodo), "initial status (todo, inProgress, completed)")
	cmd.Flags().String("deadline", "", "deadline, RFC3339 or YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.requireUser(cmd.Context())
			if err != nil {
				return err
			}

			status, _ := cmd.Flags().GetString("status")

			var tasks []domain.Task
			if status != "" {
				tasks = a.tasks.ListByStatus(cmd.Context(), user.ID, domain.TaskStatus(status))
			} else {
				tasks = a.tasks.List(cmd.Context(), user.ID)
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for _, task := range tasks {
				printTask(cmd.OutOrStdout(), task)
			}
			return nil
		},
	}
	cmd.Flags().String("status", "", "filter by status (todo, inProgress, completed)")
	return cmd
}

func newMoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task to another status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireUser(cmd.Context()); err != nil {
				return err
			}

			status, _ := cmd.Flags().GetString("to")
			target := domain.TaskStatus(status)
			if !target.Valid() {
				return domain.NewError(domain.ErrCodeInvalid, "status must be one of: todo, inProgress, completed")
			}

			task := a.tasks.UpdateStatus(cmd.Context(), args[0], target)
			if task == nil {
				return domain.ErrTaskNotFound
			}
			printTask(cmd.OutOrStdout(), *task)
			return nil
		},
	}
	cmd.Flags().String("to", "", "target status (todo, inProgress, completed)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit task fields; only the flags you set change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireUser(cmd.Context()); err != nil {
				return err
			}

			var patch taskUC.Patch
			if cmd.Flags().Changed("title") {
				title, _ := cmd.Flags().GetString("title")
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				description, _ := cmd.Flags().GetString("description")
				patch.Description = &description
			}
			if cmd.Flags().Changed("status") {
				raw, _ := cmd.Flags().GetString("status")
				status := domain.TaskStatus(raw)
				if !status.Valid() {
					return domain.NewError(domain.ErrCodeInvalid, "status must be one of: todo, inProgress, completed")
				}
				patch.Status = &status
			}
			if cmd.Flags().Changed("deadline") {
				raw, _ := cmd.Flags().GetString("deadline")
				deadline, err := parseDeadline(raw)
				if err != nil {
					return err
				}
				patch.Deadline = deadline
			}
			if changed, _ := cmd.Flags().GetBool("clear-deadline"); changed {
				patch.ClearDeadline = true
			}

			task := a.tasks.Update(cmd.Context(), args[0], patch)
			if task == nil {
				return domain.ErrTaskNotFound
			}
			printTask(cmd.OutOrStdout(), *task)
			return nil
		},
	}
	cmd.Flags().String("title", "", "new title")
	cmd.Flags().String("description", "", "new description")
	cmd.Flags().String("status", "", "new status (todo, inProgress, completed)")
	cmd.Flags().String("deadline", "", "new deadline, RFC3339 or YYYY-MM-DD")
	cmd.Flags().Bool("clear-deadline", false, "remove the deadline")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireUser(cmd.Context()); err != nil {
				return err
			}
			if !a.tasks.Delete(cmd.Context(), args[0]) {
				return domain.ErrTaskNotFound
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return nil
		},
	}
}

// parseDeadline accepts RFC3339 timestamps or bare dates.
func parseDeadline(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return &ts, nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, domain.NewError(domain.ErrCodeInvalid, "deadline must be RFC3339 or YYYY-MM-DD")
	}
	return &ts, nil
}

func printTask(w io.Writer, task domain.Task) {
	line := fmt.Sprintf("[%s] %s  %s", task.Status, task.ID, task.Title)
	if task.Deadline != nil {
		line += "  due " + task.Deadline.Format("2006-01-02")
	}
	fmt.Fprintln(w, line)
}
