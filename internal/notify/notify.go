// Package notify delivers level-up and badge celebrations as desktop
// notifications, falling back to a plain line on stderr.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/blackwell-systems/mindpatch/internal/session"
)

// Message is a single notification.
type Message struct {
	Title string
	Body  string
}

// LevelUp builds the message for a level-up event.
func LevelUp(ev session.LevelUp) Message {
	return Message{
		Title: fmt.Sprintf("Level %d reached", ev.To),
		Body:  fmt.Sprintf("You now have %d XP. Keep the momentum going.", ev.XP),
	}
}

// BadgeEarned builds the message for a newly unlocked badge.
func BadgeEarned(b session.Badge) Message {
	return Message{
		Title: b.Name + " unlocked",
		Body:  fmt.Sprintf("%d screen-free days in a row.", b.Threshold),
	}
}

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

// Notifier sends messages through the platform notification tool.
type Notifier struct {
	goos     string
	run      Runner
	lookPath func(string) (string, error)
	fallback io.Writer
}

// New returns a Notifier for the current platform.
func New() *Notifier {
	return &Notifier{
		goos: runtime.GOOS,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
		lookPath: exec.LookPath,
		fallback: os.Stderr,
	}
}

// Send delivers msg. On macOS it uses osascript, on Linux notify-send; any
// failure or other platform prints to the fallback writer instead.
func (n *Notifier) Send(ctx context.Context, msg Message) error {
	switch n.goos {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title "mindpatch" subtitle %q`, msg.Body, msg.Title)
		if err := n.run(ctx, "osascript", "-e", script); err == nil {
			return nil
		}
	case "linux":
		if _, err := n.lookPath("notify-send"); err == nil {
			if err := n.run(ctx, "notify-send", "mindpatch: "+msg.Title, msg.Body); err == nil {
				return nil
			}
		}
	}
	return n.printFallback(msg)
}

func (n *Notifier) printFallback(msg Message) error {
	_, err := fmt.Fprintf(n.fallback, "[mindpatch] %s: %s\n", msg.Title, msg.Body)
	return err
}
