// Package registry tracks, per session, the nesting history of frame stacks.
// The last pushed stack is the active one; pushing models entering a nested
// inspection context and popping models leaving it.
package registry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jask/framewalk/internal/frame"
)

// Registry holds the per-session stack-of-stacks. Sessions never share
// stacks; each session's entries are exclusively owned by that session. All
// methods are safe for concurrent use so that an active-stack lookup and the
// following mutation cannot interleave with a pop from another goroutine.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID][]*frame.Stack
}

func New() *Registry {
	return &Registry{sessions: make(map[uuid.UUID][]*frame.Stack)}
}

// ActiveStack returns the most recently pushed stack for the session, or
// false if the session has none.
func (r *Registry) ActiveStack(session uuid.UUID) (*frame.Stack, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stacks := r.sessions[session]
	if len(stacks) == 0 {
		return nil, false
	}
	return stacks[len(stacks)-1], true
}

// AllStacks returns the session's full nesting history, oldest first.
func (r *Registry) AllStacks(session uuid.UUID) []*frame.Stack {
	r.mu.Lock()
	defer r.mu.Unlock()
	stacks := r.sessions[session]
	out := make([]*frame.Stack, len(stacks))
	copy(out, stacks)
	return out
}

// Depth returns how many stacks the session has pushed.
func (r *Registry) Depth(session uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions[session])
}

// Push appends a stack; it becomes the session's active stack.
func (r *Registry) Push(session uuid.UUID, st *frame.Stack) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session] = append(r.sessions[session], st)
}

// Pop removes and returns the active stack. When the session has none it
// returns false; callers treat that as "navigation unavailable", not an
// error.
func (r *Registry) Pop(session uuid.UUID) (*frame.Stack, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stacks := r.sessions[session]
	if len(stacks) == 0 {
		return nil, false
	}
	st := stacks[len(stacks)-1]
	rest := stacks[:len(stacks)-1]
	if len(rest) == 0 {
		delete(r.sessions, session)
	} else {
		r.sessions[session] = rest
	}
	return st, true
}

// EndSession drops the session's entire nesting history.
func (r *Registry) EndSession(session uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, session)
}
