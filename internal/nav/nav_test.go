package nav

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jask/framewalk/internal/frame"
	"github.com/jask/framewalk/internal/registry"
)

type fakeContext struct {
	name string
	line int
}

func (c fakeContext) Describe() string { return "in " + c.name }

func (c fakeContext) Location() (string, int, bool) { return "app.go", c.line, true }

func (c fakeContext) Construct() frame.Construct {
	return frame.Construct{Kind: frame.KindFunction, Name: c.name}
}

func navWithFrames(t *testing.T, names ...string) (*Navigator, *frame.Stack) {
	t.Helper()
	frames := make([]*frame.Frame, len(names))
	for i, name := range names {
		frames[i] = frame.New(fakeContext{name: name, line: 10 * (i + 1)}, "", "")
	}
	st, err := frame.NewStack(frames, 0, nil)
	require.NoError(t, err)

	reg := registry.New()
	sid := uuid.New()
	reg.Push(sid, st)
	return &Navigator{Registry: reg, Session: sid}, st
}

func emptyNav() *Navigator {
	return &Navigator{Registry: registry.New(), Session: uuid.New()}
}

func TestUpDownInverse(t *testing.T) {
	t.Parallel()

	n, st := navWithFrames(t, "a", "b", "c", "d", "e")
	require.NoError(t, st.MoveTo(3))

	_, err := n.Down(2)
	require.NoError(t, err)
	require.Equal(t, 1, st.CurrentIndex())

	_, err = n.Up(2)
	require.NoError(t, err)
	require.Equal(t, 3, st.CurrentIndex(), "down(n) then up(n) restores the cursor")
}

func TestUpClampsAtTop(t *testing.T) {
	t.Parallel()

	n, st := navWithFrames(t, "a", "b", "c")
	out, err := n.Up(1000)
	require.NoError(t, err, "upward overflow is tolerated")
	require.Equal(t, 2, st.CurrentIndex())
	require.Contains(t, out, "#2")

	// already at the top: up again stays put, still no error
	_, err = n.Up(1)
	require.NoError(t, err)
	require.Equal(t, 2, st.CurrentIndex())
}

func TestDownBelowBottomFails(t *testing.T) {
	t.Parallel()

	n, st := navWithFrames(t, "a", "b", "c", "d", "e")
	require.NoError(t, st.MoveTo(2))

	_, err := n.Down(10)
	require.ErrorIs(t, err, ErrBelowBottom)
	require.Equal(t, 2, st.CurrentIndex(), "failed down leaves the cursor unchanged")
}

func TestFrameNegativeIndex(t *testing.T) {
	t.Parallel()

	n, st := navWithFrames(t, "a", "b", "c", "d", "e")

	_, err := n.Frame(-1, false)
	require.NoError(t, err)
	require.Equal(t, 4, st.CurrentIndex(), "frame(-1) selects the last frame")

	_, err = n.Frame(st.Len()-1, false)
	require.NoError(t, err)
	require.Equal(t, 4, st.CurrentIndex())

	_, err = n.Frame(-6, false)
	require.ErrorIs(t, err, frame.ErrOutOfRange)
	require.Equal(t, 4, st.CurrentIndex())

	_, err = n.Frame(5, false)
	require.ErrorIs(t, err, frame.ErrOutOfRange)
}

func TestCurrentFrameIsReadOnly(t *testing.T) {
	t.Parallel()

	n, st := navWithFrames(t, "a", "b", "c")
	require.NoError(t, st.MoveTo(1))

	out, err := n.CurrentFrame()
	require.NoError(t, err)
	require.Contains(t, out, "in b")
	require.Contains(t, out, "at app.go:20")
	require.Equal(t, 1, st.CurrentIndex())
}

func TestNoContextErrors(t *testing.T) {
	t.Parallel()

	n := emptyNav()

	_, err := n.Up(1)
	require.ErrorIs(t, err, ErrNoContext)
	_, err = n.Down(1)
	require.ErrorIs(t, err, ErrNoContext)
	_, err = n.Frame(0, false)
	require.ErrorIs(t, err, ErrNoContext)
	_, err = n.CurrentFrame()
	require.ErrorIs(t, err, ErrNoContext)

	listing, err := n.ShowStack(0, 0, false)
	require.NoError(t, err, "show-stack without a stack is informational, not an error")
	require.Equal(t, "no stack available", listing.Text)
	require.Equal(t, 0, listing.Total)
}

func TestShowStackRanges(t *testing.T) {
	t.Parallel()

	n, st := navWithFrames(t, "a", "b", "c", "d", "e")
	require.NoError(t, st.MoveTo(2))

	full, err := n.ShowStack(0, 0, false)
	require.NoError(t, err)
	require.Equal(t, 5, full.Total)
	require.Equal(t, 5, full.Shown)
	require.Len(t, strings.Split(full.Text, "\n"), 5)

	head, err := n.ShowStack(3, 0, false)
	require.NoError(t, err)
	require.Equal(t, 3, head.Shown)
	lines := strings.Split(head.Text, "\n")
	require.Contains(t, lines[0], "#0")
	require.Contains(t, lines[2], "#2")
	require.True(t, strings.HasPrefix(lines[2], "▶"), "current frame carries the marker")
	require.False(t, strings.HasPrefix(lines[0], "▶"))

	tail, err := n.ShowStack(0, 2, false)
	require.NoError(t, err)
	require.Equal(t, 2, tail.Shown)
	require.Contains(t, tail.Text, "#3")
	require.Contains(t, tail.Text, "#4")

	// head larger than the stack is just the full stack
	over, err := n.ShowStack(50, 0, false)
	require.NoError(t, err)
	require.Equal(t, 5, over.Shown)
}

func TestScenarioFromFiveFrames(t *testing.T) {
	t.Parallel()

	n, st := navWithFrames(t, "a", "b", "c", "d", "e")

	_, err := n.Up(2)
	require.NoError(t, err)
	require.Equal(t, 2, st.CurrentIndex())

	head, err := n.ShowStack(3, 0, false)
	require.NoError(t, err)
	require.Equal(t, 3, head.Shown)
	require.True(t, strings.HasPrefix(strings.Split(head.Text, "\n")[2], "▶"))

	_, err = n.Down(10)
	require.ErrorIs(t, err, ErrBelowBottom)
	require.Equal(t, 2, st.CurrentIndex())

	_, err = n.Frame(-1, false)
	require.NoError(t, err)
	require.Equal(t, 4, st.CurrentIndex())
}

func TestHasPriorContext(t *testing.T) {
	t.Parallel()

	n, _ := navWithFrames(t, "a")
	require.False(t, n.HasPriorContext())

	inner, err := frame.NewStack(
		[]*frame.Frame{frame.New(fakeContext{name: "nested"}, "", "")}, 0, nil)
	require.NoError(t, err)
	n.Registry.Push(n.Session, inner)
	require.True(t, n.HasPriorContext(), "a nested stack has somewhere to return to")

	withPrior, err := frame.NewStack(
		[]*frame.Frame{frame.New(fakeContext{name: "x"}, "", "")}, 0, fakeContext{name: "outer"})
	require.NoError(t, err)
	solo := emptyNav()
	solo.Registry.Push(solo.Session, withPrior)
	require.True(t, solo.HasPriorContext(), "a recorded prior binding counts even without nesting")
}
