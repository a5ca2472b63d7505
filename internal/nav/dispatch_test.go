package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatchMoves(t *testing.T) {
	t.Parallel()

	n, st := navWithFrames(t, "a", "b", "c", "d", "e")

	out, err := n.Dispatch("up 2")
	require.NoError(t, err)
	require.Contains(t, out, "#2")
	require.Equal(t, 2, st.CurrentIndex())

	out, err = n.Dispatch("down")
	require.NoError(t, err)
	require.Contains(t, out, "#1")

	_, err = n.Dispatch("down 5")
	require.ErrorIs(t, err, ErrBelowBottom)

	out, err = n.Dispatch("frame -1")
	require.NoError(t, err)
	require.Contains(t, out, "#4")

	// bare frame reports verbosely without moving
	out, err = n.Dispatch("frame")
	require.NoError(t, err)
	require.Contains(t, out, "in e")
	require.Equal(t, 4, st.CurrentIndex())
}

func TestDispatchShowStack(t *testing.T) {
	t.Parallel()

	n, _ := navWithFrames(t, "a", "b", "c", "d", "e")
	n.DefaultHead = 2

	out, err := n.Dispatch("show-stack")
	require.NoError(t, err)
	require.Contains(t, out, "#0")
	require.Contains(t, out, "#1")
	require.NotContains(t, out, "#2")
	require.Contains(t, out, "(2 of 5 frames)")

	out, err = n.Dispatch("show-stack -H 3")
	require.NoError(t, err)
	require.Contains(t, out, "#2")

	out, err = n.Dispatch("show-stack -T 1")
	require.NoError(t, err)
	require.Contains(t, out, "#4")
	require.NotContains(t, out, "#0 ")

	out, err = n.Dispatch("show-stack -v -H 1")
	require.NoError(t, err)
	require.Contains(t, out, "in a")

	_, err = n.Dispatch("show-stack --bogus")
	require.Error(t, err)

	_, err = n.Dispatch("show-stack -H")
	require.Error(t, err)
}

func TestDispatchBadArguments(t *testing.T) {
	t.Parallel()

	n, st := navWithFrames(t, "a", "b")

	_, err := n.Dispatch("up zero")
	require.Error(t, err)
	_, err = n.Dispatch("down -3")
	require.Error(t, err)
	_, err = n.Dispatch("frame x")
	require.Error(t, err)
	require.Equal(t, 0, st.CurrentIndex(), "parse failures never move the cursor")

	out, err := n.Dispatch("   ")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDispatchSuggestions(t *testing.T) {
	t.Parallel()

	n, _ := navWithFrames(t, "a")

	_, err := n.Dispatch("upp")
	require.ErrorIs(t, err, ErrUnknownCommand)
	require.Contains(t, err.Error(), `did you mean "up"?`)

	n.Extra = []string{"history", "pop"}
	_, err = n.Dispatch("histroy")
	require.ErrorIs(t, err, ErrUnknownCommand)
	require.Contains(t, err.Error(), `did you mean "history"?`)

	_, err = n.Dispatch("zzzzzzzz")
	require.ErrorIs(t, err, ErrUnknownCommand)
	require.NotContains(t, err.Error(), "did you mean")
}
