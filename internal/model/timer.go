package model

import (
	"math"
	"time"
)

type TimerMode string

const (
	ModeFocus      TimerMode = "focus"
	ModeShortBreak TimerMode = "shortBreak"
	ModeLongBreak  TimerMode = "longBreak"
	ModeCustom     TimerMode = "custom"
)

func (m TimerMode) IsValid() bool {
	switch m {
	case ModeFocus, ModeShortBreak, ModeLongBreak, ModeCustom:
		return true
	default:
		return false
	}
}

type ModeConfig struct {
	Name     string
	Duration int
	Icon     string
	Color    string
}

func DefaultModes() map[TimerMode]ModeConfig {
	return map[TimerMode]ModeConfig{
		ModeFocus:      {Name: "Focus", Duration: 25 * 60, Icon: "🍅", Color: "emerald"},
		ModeShortBreak: {Name: "Short Break", Duration: 5 * 60, Icon: "☕", Color: "blue"},
		ModeLongBreak:  {Name: "Long Break", Duration: 15 * 60, Icon: "🌴", Color: "purple"},
	}
}

// TimerStats is the persisted subset of TimerState.
type TimerStats struct {
	CompletedSessions int     `json:"completedSessions"`
	TotalFocusTime    int     `json:"totalFocusTime"`
	TotalBreakTime    int     `json:"totalBreakTime"`
	TodayFocus        int     `json:"todayFocus"`
	BestSession       float64 `json:"bestSession"`
	CurrentStreak     int     `json:"currentStreak"`
	LastSessionDate   *string `json:"lastSessionDate"`
}

type TimerState struct {
	TimeLeft          int
	TotalTime         int
	IsRunning         bool
	Mode              TimerMode
	CompletedSessions int
	TotalFocusTime    int
	TotalBreakTime    int
	TodayFocus        int
	BestSession       float64
	CurrentStreak     int
	LastSessionDate   *string
}

func DefaultTimerState() TimerState {
	focus := DefaultModes()[ModeFocus].Duration
	return TimerState{
		TimeLeft:  focus,
		TotalTime: focus,
		Mode:      ModeFocus,
	}
}

func (s TimerState) Stats() TimerStats {
	return TimerStats{
		CompletedSessions: s.CompletedSessions,
		TotalFocusTime:    s.TotalFocusTime,
		TotalBreakTime:    s.TotalBreakTime,
		TodayFocus:        s.TodayFocus,
		BestSession:       s.BestSession,
		CurrentStreak:     s.CurrentStreak,
		LastSessionDate:   copyString(s.LastSessionDate),
	}
}

func (s *TimerState) ApplyStats(st TimerStats) {
	s.CompletedSessions = st.CompletedSessions
	s.TotalFocusTime = st.TotalFocusTime
	s.TotalBreakTime = st.TotalBreakTime
	s.TodayFocus = st.TodayFocus
	s.BestSession = st.BestSession
	s.CurrentStreak = st.CurrentStreak
	s.LastSessionDate = copyString(st.LastSessionDate)
}

// Clone returns a copy that shares no pointers with s.
func (s TimerState) Clone() TimerState {
	s.LastSessionDate = copyString(s.LastSessionDate)
	return s
}

// Progress is the elapsed fraction of the current session in [0,1].
func (s TimerState) Progress() float64 {
	if s.TotalTime <= 0 {
		return 0
	}
	p := float64(s.TotalTime-s.TimeLeft) / float64(s.TotalTime)
	return math.Max(0, math.Min(1, p))
}

// Summary is the read model shown on stats screens.
type Summary struct {
	TimerStats
	ProductivityScore int `json:"productivityScore"`
}

// Summarize scores today's focus against a daily goal in minutes, capped at 100.
func Summarize(st TimerStats, dailyGoalMinutes int) Summary {
	out := Summary{TimerStats: st}
	if dailyGoalMinutes > 0 {
		score := float64(st.TodayFocus) / 60 / float64(dailyGoalMinutes) * 100
		out.ProductivityScore = int(math.Min(100, math.Round(score)))
	}
	return out
}

// DateKey renders the calendar day of t in local time, e.g. "Thu Oct 15 2026".
func DateKey(t time.Time) string {
	return t.Local().Format("Mon Jan 02 2006")
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
