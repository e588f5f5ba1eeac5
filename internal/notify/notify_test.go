package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/blackwell-systems/mindpatch/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func fakeNotifier(goos string, runErr, lookErr error) (*Notifier, *[]call, *bytes.Buffer) {
	var calls []call
	var buf bytes.Buffer
	n := &Notifier{
		goos: goos,
		run: func(_ context.Context, name string, args ...string) error {
			calls = append(calls, call{name, args})
			return runErr
		},
		lookPath: func(string) (string, error) { return "/usr/bin/notify-send", lookErr },
		fallback: &buf,
	}
	return n, &calls, &buf
}

func TestSend_Linux(t *testing.T) {
	n, calls, buf := fakeNotifier("linux", nil, nil)
	require.NoError(t, n.Send(context.Background(), Message{Title: "Level 2 reached", Body: "hi"}))
	require.Len(t, *calls, 1)
	assert.Equal(t, "notify-send", (*calls)[0].name)
	assert.Equal(t, []string{"mindpatch: Level 2 reached", "hi"}, (*calls)[0].args)
	assert.Empty(t, buf.String())
}

func TestSend_LinuxWithoutNotifySend(t *testing.T) {
	n, calls, buf := fakeNotifier("linux", nil, errors.New("not found"))
	require.NoError(t, n.Send(context.Background(), Message{Title: "t", Body: "b"}))
	assert.Empty(t, *calls)
	assert.Equal(t, "[mindpatch] t: b\n", buf.String())
}

func TestSend_DarwinFailureFallsBack(t *testing.T) {
	n, calls, buf := fakeNotifier("darwin", errors.New("osascript failed"), nil)
	require.NoError(t, n.Send(context.Background(), Message{Title: "t", Body: "b"}))
	require.Len(t, *calls, 1)
	assert.Equal(t, "osascript", (*calls)[0].name)
	assert.Contains(t, buf.String(), "t: b")
}

func TestSend_OtherPlatform(t *testing.T) {
	n, calls, buf := fakeNotifier("windows", nil, nil)
	require.NoError(t, n.Send(context.Background(), Message{Title: "t", Body: "b"}))
	assert.Empty(t, *calls)
	assert.NotEmpty(t, buf.String())
}

func TestMessages(t *testing.T) {
	m := LevelUp(session.LevelUp{From: 1, To: 2, XP: 105})
	assert.Equal(t, "Level 2 reached", m.Title)
	assert.Contains(t, m.Body, "105 XP")

	b := BadgeEarned(session.AllBadges[0])
	assert.Equal(t, "Bronze Mindful Badge unlocked", b.Title)
	assert.Contains(t, b.Body, "3 screen-free days")
}
