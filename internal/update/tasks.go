package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) handleTaskKey(msg tea.KeyMsg) Model {
	tasks := m.app.Tasks
	switch msg.String() {
	case "a", "i":
		m.Editor = TaskEditorState{Active: true, Category: model.CategoryNormal}
		m.addInput.SetValue("")
		m.addInput.Focus()
		return m
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m
	case "down", "j":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
		return m
	case " ", "x":
		if task, ok := m.currentTask(); ok {
			tasks.Toggle(task.ID)
			m.Status = StatusBar{Text: m.t("tasks.toggled")}
		}
	case "d":
		if task, ok := m.currentTask(); ok {
			tasks.Delete(task.ID)
			m.Status = StatusBar{Text: m.t("tasks.removed")}
		}
	case "J":
		if m.Cursor < len(m.Tasks)-1 {
			tasks.MoveTask(m.Tasks[m.Cursor].ID, m.Tasks[m.Cursor+1].ID)
			m.Cursor++
			m.Status = StatusBar{Text: m.t("tasks.moved")}
		}
	case "K":
		if m.Cursor > 0 && m.Cursor < len(m.Tasks) {
			tasks.MoveTask(m.Tasks[m.Cursor].ID, m.Tasks[m.Cursor-1].ID)
			m.Cursor--
			m.Status = StatusBar{Text: m.t("tasks.moved")}
		}
	case "C":
		tasks.ClearCompleted()
		m.Status = StatusBar{Text: m.t("tasks.cleared")}
	default:
		return m
	}
	m.refresh()
	return m
}

func (m Model) handleEditorKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Editor = TaskEditorState{Category: model.CategoryNormal}
		m.addInput.SetValue("")
		m.addInput.Blur()
		return m
	case "tab":
		m.Editor.Category = m.Editor.Category.Next()
		return m
	case "enter":
		text := strings.TrimSpace(m.addInput.Value())
		if text == "" {
			return m
		}
		task := m.app.Tasks.Add(text, m.Editor.Category)
		m.Editor.Input = ""
		m.addInput.SetValue("")
		m.Status = StatusBar{Text: m.t("tasks.added", task.Text)}
		m.refresh()
		m.Cursor = len(m.Tasks) - 1
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.addInput.SetValue(m.addInput.Value() + string(msg.Runes))
		m.addInput.CursorEnd()
		m.Editor.Input = m.addInput.Value()
		return m
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	_ = cmd
	m.Editor.Input = m.addInput.Value()
	return m
}

func (m Model) currentTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}

func (m Model) renderTaskView() string {
	items := make([]views.TaskItemData, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		items = append(items, views.TaskItemData{
			Text:          task.Text,
			Category:      task.Category,
			CategoryLabel: m.categoryLabel(task.Category),
			Completed:     task.Completed,
		})
	}
	stats := model.ComputeTaskStats(m.Tasks)
	return views.RenderTaskPanel(views.TaskPanelData{
		Theme:        m.Theme,
		Title:        m.t("view.tasks"),
		Items:        items,
		Cursor:       m.Cursor,
		ListView:     m.taskList.View(),
		Adding:       m.Editor.Active,
		InputView:    m.addInput.View(),
		NewCategory:  m.categoryLabel(m.Editor.Category),
		Empty:        m.t("tasks.empty"),
		ProgressText: m.t("tasks.progress", stats.Completed, stats.Total),
	})
}
