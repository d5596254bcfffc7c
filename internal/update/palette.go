package update

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/commands"
	"github.com/sandeepkv93/focusd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.commandInput.CursorEnd()
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	a := m.app
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			task := a.Tasks.Add(args.Text, args.Category)
			m.CurrentView = ViewTasks
			return commands.Result{Message: m.t("tasks.added", task.Text)}, nil
		},
		Done: func(args commands.IndexArgs) (commands.Result, error) {
			task, err := m.taskAt(args.Index)
			if err != nil {
				return commands.Result{}, err
			}
			a.Tasks.Toggle(task.ID)
			return commands.Result{Message: m.t("tasks.toggled")}, nil
		},
		Remove: func(args commands.IndexArgs) (commands.Result, error) {
			task, err := m.taskAt(args.Index)
			if err != nil {
				return commands.Result{}, err
			}
			a.Tasks.Delete(task.ID)
			return commands.Result{Message: m.t("tasks.removed")}, nil
		},
		Move: func(args commands.MoveArgs) (commands.Result, error) {
			if err := a.MoveAt(args.From, args.To); err != nil {
				return commands.Result{}, m.rangeError(err, args.From)
			}
			return commands.Result{Message: m.t("tasks.moved")}, nil
		},
		Clear: func() (commands.Result, error) {
			a.Tasks.ClearCompleted()
			return commands.Result{Message: m.t("tasks.cleared")}, nil
		},
		Mode: func(args commands.ModeArgs) (commands.Result, error) {
			if err := a.Timer.SetMode(args.Mode); err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewTimer
			return commands.Result{Message: m.t("timer.mode", m.modeLabel(args.Mode))}, nil
		},
		Custom: func(args commands.CustomArgs) (commands.Result, error) {
			if err := a.Timer.SetCustomTime(args.Minutes * 60); err != nil {
				return commands.Result{}, err
			}
			m.CurrentView = ViewTimer
			return commands.Result{Message: m.t("timer.custom", args.Minutes)}, nil
		},
		Theme: func() (commands.Result, error) {
			theme := a.Theme.Toggle()
			return commands.Result{Message: m.t("status.theme", theme)}, nil
		},
		Lang: func(args commands.LangArgs) (commands.Result, error) {
			if !a.Locale.Set(args.Code) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.t("status.unknownLocale", args.Code)}
			}
			return commands.Result{Message: a.Translator.T("status.locale", a.Locale.Locale())}, nil
		},
	})
	m.refresh()
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.notify("Command", m.Status.Text, levelFromError(m.Status.IsError))
	m.closePalette()
	return m
}

func (m Model) taskAt(n int) (model.Task, error) {
	task, err := m.app.TaskAt(n)
	if err != nil {
		return model.Task{}, m.rangeError(err, n)
	}
	return task, nil
}

func (m Model) rangeError(err error, n int) error {
	if errors.Is(err, app.ErrTaskNotFound) {
		return commands.OutOfRange(n, len(m.app.Tasks.Tasks()))
	}
	return err
}
