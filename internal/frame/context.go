package frame

// Context is the narrow capability surface the inspector reads from one
// captured execution context. The producer that captured the context owns it;
// the inspector never copies, mutates, or releases it.
type Context interface {
	// Describe reports what is executing at this context, suitable for the
	// verbose rendering of a frame.
	Describe() string
	// Location reports the source position of the context, if known.
	Location() (file string, line int, ok bool)
	// Construct reports the defining construct enclosing the context, used to
	// derive a label when the producer supplied none.
	Construct() Construct
}

// Signaturer is optionally implemented by contexts that can report a call
// signature (argument text) for the short rendering.
type Signaturer interface {
	Signature() string
}

// ConstructKind classifies the defining construct of a context.
type ConstructKind string

const (
	KindFunction ConstructKind = "function"
	KindMethod   ConstructKind = "method"
	KindType     ConstructKind = "type"
	KindModule   ConstructKind = "module"
	KindTopLevel ConstructKind = "top-level"
)

// Construct describes the construct a context is defined inside.
type Construct struct {
	Kind ConstructKind
	Name string // bare function or method name; empty for synthetic kinds
}

// Label derives the fallback frame label for the construct: the bare name for
// functions and methods, a synthetic tag otherwise.
func (c Construct) Label() string {
	switch c.Kind {
	case KindFunction, KindMethod:
		if c.Name != "" {
			return c.Name
		}
		return "top-level"
	case KindType:
		return "type-body"
	case KindModule:
		return "module-body"
	default:
		return "top-level"
	}
}
