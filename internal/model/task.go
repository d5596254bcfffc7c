package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidCategory = errors.New("model: invalid task category")

// TimestampLayout is the ISO-8601 layout used for task creation stamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Category string

const (
	CategoryUrgent    Category = "urgent"
	CategoryImportant Category = "important"
	CategoryNormal    Category = "normal"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryUrgent, CategoryImportant, CategoryNormal:
		return true
	default:
		return false
	}
}

// Next cycles urgent -> important -> normal -> urgent.
func (c Category) Next() Category {
	switch c {
	case CategoryUrgent:
		return CategoryImportant
	case CategoryImportant:
		return CategoryNormal
	default:
		return CategoryUrgent
	}
}

// ParseCategory accepts any case and falls back to normal for unknown input.
func ParseCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c.IsValid() {
		return c
	}
	return CategoryNormal
}

type Task struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Category  Category `json:"category"`
	Completed bool     `json:"completed"`
	CreatedAt string   `json:"createdAt"`
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func (t Task) Created() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, t.CreatedAt)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if _, err := t.Created(); err != nil {
		return fmt.Errorf("model: task createdAt: %w", err)
	}
	return nil
}

type TaskStats struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Pending   int     `json:"pending"`
	Progress  float64 `json:"progress"`
}

func ComputeTaskStats(tasks []Task) TaskStats {
	out := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			out.Completed++
		}
	}
	out.Pending = out.Total - out.Completed
	if out.Total > 0 {
		out.Progress = float64(out.Completed) / float64(out.Total) * 100
	}
	return out
}
