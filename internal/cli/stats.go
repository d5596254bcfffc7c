package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/storage"
	"github.com/sandeepkv93/focusd/internal/views"
)

type statsReport struct {
	Timer model.Summary   `json:"timer"`
	Tasks model.TaskStats `json:"tasks"`
	// SavedAt is when the timer stats were last persisted, when the backend
	// tracks it.
	SavedAt *time.Time `json:"savedAt,omitempty"`
}

func addStats(topLevel *cobra.Command, env Env, ro *rootOptions) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session and task statistics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, env, ro, func(a *app.App) error {
				report := statsReport{
					Timer: a.Summary(),
					Tasks: model.ComputeTaskStats(a.Tasks.Tasks()),
				}
				report.SavedAt = savedAt(cmd.Context(), a.KV)
				if ro.output.JSON {
					return ro.output.writeJSON(env.Out, report)
				}
				printStats(env, a, report)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func printStats(env Env, a *app.App, r statsReport) {
	t := a.Translator.T
	_, _ = fmt.Fprintln(env.Out, title(t("view.stats")))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold(t("stats.sessions")), r.Timer.CompletedSessions)
	tbl.AddRow(bold(t("stats.focusTime")), views.FormatMinutes(r.Timer.TotalFocusTime))
	tbl.AddRow(bold(t("stats.breakTime")), views.FormatMinutes(r.Timer.TotalBreakTime))
	tbl.AddRow(bold(t("stats.today")), views.FormatMinutes(r.Timer.TodayFocus))
	tbl.AddRow(bold(t("stats.best")), fmt.Sprintf("%.0fm", r.Timer.BestSession))
	tbl.AddRow(bold(t("stats.streak")), t("stats.days", r.Timer.CurrentStreak))
	tbl.AddRow(bold(t("stats.score")), fmt.Sprintf("%d%%", r.Timer.ProductivityScore))
	tbl.AddRow(bold(t("view.tasks")), t("tasks.progress", r.Tasks.Completed, r.Tasks.Total))
	if r.SavedAt != nil {
		tbl.AddRow(bold(t("stats.saved")), faint(r.SavedAt.Local().Format("Jan 02 15:04")))
	}
	_, _ = fmt.Fprintln(env.Out, tbl)
}

func savedAt(ctx context.Context, kv storage.KV) *time.Time {
	stamped, ok := kv.(storage.Timestamped)
	if !ok {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	at, err := stamped.UpdatedAt(ctx, storage.KeyTimer)
	if err != nil {
		return nil
	}
	return &at
}
