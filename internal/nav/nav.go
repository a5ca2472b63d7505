// Package nav is the command surface over the frame navigation core: up,
// down, frame, and show-stack, with the boundary policy the primitives leave
// to the caller. Moving up past the top clamps silently; moving down past the
// bottom is a hard error.
package nav

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/framewalk/internal/frame"
	"github.com/jask/framewalk/internal/registry"
)

var (
	// ErrNoContext reports that the session has no active stack to navigate.
	ErrNoContext = errors.New("no active stack for this session")
	// ErrBelowBottom reports a move below the first frame.
	ErrBelowBottom = errors.New("already at the bottom of the stack")
)

// Navigator drives one session's navigation against a registry. Fields are
// set by the host at construction.
type Navigator struct {
	Registry *registry.Registry
	Session  uuid.UUID

	// DefaultHead bounds show-stack output when no range flag is given.
	// Zero means the full range.
	DefaultHead int
	// Marker prefixes the current frame in show-stack listings.
	Marker string
	// Extra lists host commands outside this package, so that unknown-command
	// suggestions can cover them too.
	Extra []string
}

func (n *Navigator) active() (*frame.Stack, error) {
	st, ok := n.Registry.ActiveStack(n.Session)
	if !ok {
		return nil, ErrNoContext
	}
	return st, nil
}

// Up moves the cursor toward older frames by steps (default 1), clamping at
// the top. Overshooting upward is never an error. Returns the rendering of
// the newly selected frame.
func (n *Navigator) Up(steps int) (string, error) {
	st, err := n.active()
	if err != nil {
		return "", err
	}
	if steps < 1 {
		steps = 1
	}
	target := st.CurrentIndex() + steps
	if target > st.Len()-1 {
		target = st.Len() - 1
	}
	if err := st.MoveTo(target); err != nil {
		return "", err
	}
	return st.RenderFrame(target, false)
}

// Down moves the cursor toward newer frames by steps (default 1). Moving past
// index 0 fails with ErrBelowBottom and leaves the cursor unchanged.
func (n *Navigator) Down(steps int) (string, error) {
	st, err := n.active()
	if err != nil {
		return "", err
	}
	if steps < 1 {
		steps = 1
	}
	target := st.CurrentIndex() - steps
	if target < 0 {
		return "", fmt.Errorf("%w (frame #%d is the innermost)", ErrBelowBottom, st.CurrentIndex())
	}
	if err := st.MoveTo(target); err != nil {
		return "", err
	}
	return st.RenderFrame(target, false)
}

// Frame jumps to an explicit index. Negative indices count from the end, -1
// being the outermost frame. Returns the rendering of the selected frame.
func (n *Navigator) Frame(index int, verbose bool) (string, error) {
	st, err := n.active()
	if err != nil {
		return "", err
	}
	target := index
	if target < 0 {
		target = st.Len() + target
	}
	if err := st.MoveTo(target); err != nil {
		return "", err
	}
	return st.RenderFrame(target, verbose)
}

// CurrentFrame reports the selected frame verbosely without moving the
// cursor.
func (n *Navigator) CurrentFrame() (string, error) {
	st, err := n.active()
	if err != nil {
		return "", err
	}
	return st.RenderFrame(st.CurrentIndex(), true)
}

// HasPriorContext reports whether leaving this stack lands somewhere: the
// stack recorded a prior binding, or the session has an outer stack beneath
// it.
func (n *Navigator) HasPriorContext() bool {
	st, ok := n.Registry.ActiveStack(n.Session)
	if !ok {
		return false
	}
	return st.PriorContext() != nil || n.Registry.Depth(n.Session) > 1
}

// Listing is the result of ShowStack: the composed text plus frame counts.
type Listing struct {
	Text  string
	Total int
	Shown int
}

// ShowStack renders a contiguous sub-range of the active stack, marking the
// current frame. head selects the innermost frames, tail the outermost; head
// wins when both are given; zero for both means the full range. With no
// active stack it returns an informational listing, not an error.
func (n *Navigator) ShowStack(head, tail int, verbose bool) (Listing, error) {
	st, ok := n.Registry.ActiveStack(n.Session)
	if !ok {
		return Listing{Text: "no stack available"}, nil
	}
	lo, hi := 0, st.Len()
	switch {
	case head > 0:
		if head < hi {
			hi = head
		}
	case tail > 0:
		if st.Len()-tail > 0 {
			lo = st.Len() - tail
		}
	}

	marker := n.Marker
	if marker == "" {
		marker = "▶"
	}
	pad := strings.Repeat(" ", len([]rune(marker)))

	var b strings.Builder
	for i := lo; i < hi; i++ {
		line, err := st.RenderFrame(i, verbose)
		if err != nil {
			return Listing{}, err
		}
		prefix := pad
		if i == st.CurrentIndex() {
			prefix = marker
		}
		if i > lo {
			b.WriteString("\n")
		}
		b.WriteString(prefix)
		b.WriteString(" ")
		// keep continuation lines of verbose output aligned under the frame
		b.WriteString(strings.ReplaceAll(line, "\n", "\n"+pad+" "))
	}
	return Listing{Text: b.String(), Total: st.Len(), Shown: hi - lo}, nil
}
