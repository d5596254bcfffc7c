package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/commands"
	"github.com/sandeepkv93/focusd/internal/model"
)

func addTasks(topLevel *cobra.Command, env Env, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "List and edit tasks.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, env, ro, func(a *app.App) error {
				return printTasks(env, ro, a.Tasks.Tasks())
			})
		},
	}

	category := ""
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task. Prefix the text with !urgent or !important to set a category.",
		Example: `
focusd tasks add write the report
focusd tasks add !urgent call the bank
focusd tasks add --category important review PR
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskCommand(cmd, env, ro, "add "+strings.Join(args, " "), func(c *commands.Command) {
				if cmd.Flags().Changed("category") {
					c.Add.Category = model.ParseCategory(category)
				}
			})
		},
	}
	add.Flags().StringVarP(&category, "category", "c", "", "One of urgent, important or normal.")

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in order.",
		Args:    cobra.NoArgs,
		RunE:    cmd.RunE,
	}

	done := &cobra.Command{
		Use:     "done <n>",
		Aliases: []string{"toggle"},
		Short:   "Toggle completion of task n.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskCommand(cmd, env, ro, "done "+args[0], nil)
		},
	}

	rm := &cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"delete", "del"},
		Short:   "Delete task n.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskCommand(cmd, env, ro, "rm "+args[0], nil)
		},
	}

	move := &cobra.Command{
		Use:     "move <from> <to>",
		Aliases: []string{"mv"},
		Short:   "Move task from one position to another.",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskCommand(cmd, env, ro, "move "+args[0]+" "+args[1], nil)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove completed tasks.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTaskCommand(cmd, env, ro, "clear", nil)
		},
	}

	cmd.AddCommand(add, list, done, rm, move, clearCmd)
	topLevel.AddCommand(cmd)
}

// runTaskCommand parses raw with the palette grammar and applies it to the
// task store. The list is printed afterwards.
func runTaskCommand(cmd *cobra.Command, env Env, ro *rootOptions, raw string, adjust func(*commands.Command)) error {
	parsed, err := commands.Parse(raw)
	if err != nil {
		return ro.output.HandleError(env.Out, err)
	}
	if adjust != nil {
		adjust(&parsed)
	}
	return withApp(cmd, env, ro, func(a *app.App) error {
		res, err := commands.Execute(parsed, taskHandlers(a))
		if err != nil {
			return err
		}
		if !ro.output.JSON {
			_, _ = fmt.Fprintln(env.Out, success(res.Message))
		}
		return printTasks(env, ro, a.Tasks.Tasks())
	})
}

func taskHandlers(a *app.App) commands.Handlers {
	t := a.Translator.T
	at := func(n int) (model.Task, error) {
		task, err := a.TaskAt(n)
		if errors.Is(err, app.ErrTaskNotFound) {
			return task, commands.OutOfRange(n, len(a.Tasks.Tasks()))
		}
		return task, err
	}
	return commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			task := a.Tasks.Add(args.Text, args.Category)
			return commands.Result{Message: t("tasks.added", task.Text)}, nil
		},
		Done: func(args commands.IndexArgs) (commands.Result, error) {
			task, err := at(args.Index)
			if err != nil {
				return commands.Result{}, err
			}
			a.Tasks.Toggle(task.ID)
			return commands.Result{Message: t("tasks.toggled")}, nil
		},
		Remove: func(args commands.IndexArgs) (commands.Result, error) {
			task, err := at(args.Index)
			if err != nil {
				return commands.Result{}, err
			}
			a.Tasks.Delete(task.ID)
			return commands.Result{Message: t("tasks.removed")}, nil
		},
		Move: func(args commands.MoveArgs) (commands.Result, error) {
			src, err := at(args.From)
			if err != nil {
				return commands.Result{}, err
			}
			dst, err := at(args.To)
			if err != nil {
				return commands.Result{}, err
			}
			a.Tasks.MoveTask(src.ID, dst.ID)
			return commands.Result{Message: t("tasks.moved")}, nil
		},
		Clear: func() (commands.Result, error) {
			a.Tasks.ClearCompleted()
			return commands.Result{Message: t("tasks.cleared")}, nil
		},
	}
}

func printTasks(env Env, ro *rootOptions, tasks []model.Task) error {
	if ro.output.JSON {
		return ro.output.writeJSON(env.Out, tasks)
	}
	stats := model.ComputeTaskStats(tasks)
	_, _ = fmt.Fprintf(env.Out, "%s %s\n", title("Tasks"), faint(fmt.Sprintf("- %d of %d done", stats.Completed, stats.Total)))
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(env.Out, faint(" none"))
		return nil
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold("#"), bold("Done"), bold("Category"), bold("Task"), bold("Created"))
	for i, task := range tasks {
		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}
		created := ""
		if ts, err := task.Created(); err == nil {
			created = ts.Local().Format("Jan 02 15:04")
		}
		tbl.AddRow(i+1, check, string(task.Category), task.Text, created)
	}
	_, _ = fmt.Fprintln(env.Out, tbl)
	return nil
}
