package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/focusd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	global := toBindings(m.globalBindings())
	contextual := toBindings(m.viewBindings())
	return views.RenderHelpPanel(views.HelpPanelData{
		Title:    m.t("help.title"),
		Markdown: m.t("help.body"),
		Theme:    m.Theme,
		KeysView: m.helpModel.View(helpKeyMap{
			short: append(append([]key.Binding{}, global...), contextual...),
			full:  [][]key.Binding{global, contextual},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Timer, Action: "timer"},
		{Key: m.Keys.Tasks, Action: "tasks"},
		{Key: m.Keys.Theme, Action: "toggle theme"},
		{Key: m.Keys.Locale, Action: "next language"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTimer:
		return []KeyBinding{
			{Key: "space", Action: "start/pause"},
			{Key: "r", Action: "reset"},
			{Key: "c", Action: "complete now"},
			{Key: "f/s/l", Action: "focus/short/long"},
		}
	case ViewTasks:
		return []KeyBinding{
			{Key: "a", Action: "add task"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "toggle done"},
			{Key: "d", Action: "delete"},
			{Key: "J/K", Action: "reorder"},
			{Key: "C", Action: "clear completed"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func toBindings(kbs []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
