package frame

import (
	"errors"
	"fmt"
)

// ErrOutOfRange reports a frame index outside [0, Len).
var ErrOutOfRange = errors.New("frame index out of range")

type renderKey struct {
	index   int
	verbose bool
}

// Stack is an ordered sequence of frames with a single cursor. Index 0 is the
// innermost (most recent) frame. The frame sequence is fixed at construction;
// only the cursor moves. Rendered lines are cached for the stack's lifetime.
type Stack struct {
	frames []*Frame
	cursor int
	prior  Context // context active before this stack was entered, if any
	cache  map[renderKey]string
}

// NewStack builds a stack over frames with an initial cursor (normally 0).
// prior may be nil. At least one frame is required.
func NewStack(frames []*Frame, cursor int, prior Context) (*Stack, error) {
	if len(frames) == 0 {
		return nil, errors.New("frame stack requires at least one frame")
	}
	if cursor < 0 || cursor >= len(frames) {
		return nil, fmt.Errorf("%w: initial cursor %d (stack has %d frames)", ErrOutOfRange, cursor, len(frames))
	}
	fs := make([]*Frame, len(frames))
	copy(fs, frames)
	return &Stack{
		frames: fs,
		cursor: cursor,
		prior:  prior,
		cache:  make(map[renderKey]string),
	}, nil
}

// Len returns the number of frames.
func (s *Stack) Len() int { return len(s.frames) }

// CurrentIndex returns the cursor.
func (s *Stack) CurrentIndex() int { return s.cursor }

// Current returns the frame under the cursor.
func (s *Stack) Current() *Frame { return s.frames[s.cursor] }

// FrameAt returns the frame at index.
func (s *Stack) FrameAt(index int) (*Frame, error) {
	if index < 0 || index >= len(s.frames) {
		return nil, fmt.Errorf("%w: %d (stack has %d frames)", ErrOutOfRange, index, len(s.frames))
	}
	return s.frames[index], nil
}

// MoveTo sets the cursor. It is strict: any out-of-range target is rejected
// and the cursor is left unchanged. Whether a move should be clamped or
// refused before reaching this point is the calling command's policy.
func (s *Stack) MoveTo(target int) error {
	if target < 0 || target >= len(s.frames) {
		return fmt.Errorf("%w: %d (stack has %d frames)", ErrOutOfRange, target, len(s.frames))
	}
	s.cursor = target
	return nil
}

// MoveRelative moves the cursor by delta, with MoveTo's bounds behavior.
func (s *Stack) MoveRelative(delta int) error {
	return s.MoveTo(s.cursor + delta)
}

// PriorContext returns the context that was active before this stack was
// entered, or nil.
func (s *Stack) PriorContext() Context { return s.prior }

// RenderFrame returns the rendering for the frame at index, computing and
// caching it on first call. Repeated calls with the same arguments return the
// identical string without re-introspecting the context.
func (s *Stack) RenderFrame(index int, verbose bool) (string, error) {
	if index < 0 || index >= len(s.frames) {
		return "", fmt.Errorf("%w: %d (stack has %d frames)", ErrOutOfRange, index, len(s.frames))
	}
	k := renderKey{index: index, verbose: verbose}
	if out, ok := s.cache[k]; ok {
		return out, nil
	}
	out := s.frames[index].render(index, verbose)
	s.cache[k] = out
	return out, nil
}
