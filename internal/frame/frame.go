// Package frame holds the frame navigation core: a Frame wraps one captured
// execution context, a Stack is an ordered, cursor-tracked sequence of frames.
package frame

import (
	"fmt"
	"strings"
)

// Frame is one captured execution context plus descriptive metadata. The
// context handle is externally owned; everything derived from it is computed
// lazily and memoized, since introspecting a context may be expensive.
type Frame struct {
	ctx   Context
	typ   string // free-form tag, optional
	label string // pre-supplied description, optional

	// memoized derivations, populated on first access
	memoLabel *string
	memoDesc  *string
}

// New wraps a context with optional type tag and label. typ and label may be
// empty; the label falls back to the context's defining construct.
func New(ctx Context, typ, label string) *Frame {
	return &Frame{ctx: ctx, typ: typ, label: label}
}

// Context returns the wrapped context handle.
func (f *Frame) Context() Context { return f.ctx }

// Type returns the frame's free-form type tag, or "".
func (f *Frame) Type() string { return f.typ }

// DisplayLabel returns the supplied label, or a label derived from the
// context's defining construct. The derivation runs at most once.
func (f *Frame) DisplayLabel() string {
	if f.label != "" {
		return f.label
	}
	if f.memoLabel == nil {
		l := f.ctx.Construct().Label()
		f.memoLabel = &l
	}
	return *f.memoLabel
}

// description memoizes the context's self-description.
func (f *Frame) description() string {
	if f.memoDesc == nil {
		d := f.ctx.Describe()
		f.memoDesc = &d
	}
	return *f.memoDesc
}

// render composes the line for this frame at the given stack index. The short
// form is "#index [type] label <signature>"; the verbose form appends the
// self-description and source location.
func (f *Frame) render(index int, verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d", index)
	if f.typ != "" {
		fmt.Fprintf(&b, " [%s]", f.typ)
	}
	b.WriteString(" ")
	b.WriteString(f.DisplayLabel())
	if sig, ok := f.ctx.(Signaturer); ok {
		if s := sig.Signature(); s != "" {
			b.WriteString(" ")
			b.WriteString(s)
		}
	}
	if verbose {
		if d := f.description(); d != "" {
			b.WriteString("\n    ")
			b.WriteString(d)
		}
		if file, line, ok := f.ctx.Location(); ok {
			fmt.Fprintf(&b, "\n    at %s:%d", file, line)
		}
	}
	return b.String()
}
