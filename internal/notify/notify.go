package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

type Notification struct {
	Title string
	Body  string
}

// Notifier delivers a completion notice. Delivery is best effort; callers
// log the error and carry on.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type Noop struct{}

func (Noop) Notify(context.Context, Notification) error { return nil }

// Bell rings the terminal bell on W.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{W: w}
}

func (b *Bell) Notify(context.Context, Notification) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.W == nil {
		return nil
	}
	_, err := io.WriteString(b.W, "\a")
	return err
}

// Desktop shells out to notify-send on linux and osascript on darwin. Other
// platforms are a no-op.
type Desktop struct {
	GOOS    string
	command func(ctx context.Context, name string, args ...string) error
}

func NewDesktop() *Desktop {
	return &Desktop{GOOS: runtime.GOOS, command: runCommand}
}

func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	name, args, ok := desktopCommand(d.GOOS, n)
	if !ok {
		return nil
	}
	if err := d.command(ctx, name, args...); err != nil {
		return fmt.Errorf("notify: %s: %w", name, err)
	}
	return nil
}

func desktopCommand(goos string, n Notification) (string, []string, bool) {
	switch goos {
	case "linux":
		return "notify-send", []string{n.Title, n.Body}, true
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return "osascript", []string{"-e", script}, true
	default:
		return "", nil, false
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
