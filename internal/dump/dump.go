// Package dump produces frame contexts from Go runtime stack dumps, either
// parsed from text (panic output, runtime.Stack, SIGQUIT dumps) or captured
// from the live process. It is the upstream producer for the navigation core:
// it acquires contexts, the core only navigates them.
package dump

import (
	"fmt"
	"strings"

	"github.com/jask/framewalk/internal/frame"
)

// Dump is one parsed stack dump: every goroutine found in the input.
type Dump struct {
	Goroutines []*Goroutine
}

// Goroutine is one goroutine's captured call chain, innermost record first.
type Goroutine struct {
	ID      int
	State   string // scheduler state from the header, e.g. "chan receive"
	Records []*Record
}

// Title is a one-line description for pickers and logs.
func (g *Goroutine) Title() string {
	top := "?"
	if len(g.Records) > 0 {
		top = g.Records[0].Func
	}
	return fmt.Sprintf("goroutine %d [%s] %s", g.ID, g.State, top)
}

// Record is one captured call site. It implements frame.Context; all fields
// are plain data fixed at parse time, so descriptions never change under a
// live stack.
type Record struct {
	Func      string // qualified function, e.g. main.(*Server).handle
	Args      string // raw argument text including parens, "" if unknown
	File      string
	Line      int
	CreatedBy bool // spawn-site trailer record, not a real call frame
}

// Describe reports the full call as written in the dump.
func (r *Record) Describe() string {
	if r.CreatedBy {
		return "created by " + r.Func
	}
	return r.Func + r.Args
}

// Location reports the source position, if the dump carried one.
func (r *Record) Location() (string, int, bool) {
	if r.File == "" {
		return "", 0, false
	}
	return r.File, r.Line, true
}

// Signature exposes the argument text for short frame renderings.
func (r *Record) Signature() string {
	if r.Args == "" || r.Args == "()" {
		return ""
	}
	return r.Args
}

// Construct classifies the record's defining construct from its qualified
// name: methods carry receiver syntax, goexit marks the goroutine root.
func (r *Record) Construct() frame.Construct {
	if r.Func == "" || r.Func == "runtime.goexit" {
		return frame.Construct{Kind: frame.KindTopLevel}
	}
	name := r.Func
	// drop the package path; the package itself keeps the final dot-joined part
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	// receiver syntax: (*T).M or T.M
	if strings.HasPrefix(name, "(") {
		if i := strings.Index(name, ")."); i >= 0 {
			return frame.Construct{Kind: frame.KindMethod, Name: name[i+2:]}
		}
		return frame.Construct{Kind: frame.KindFunction, Name: name}
	}
	parts := strings.Split(name, ".")
	last := parts[len(parts)-1]
	if len(parts) > 1 && !isClosureName(last) {
		return frame.Construct{Kind: frame.KindMethod, Name: last}
	}
	return frame.Construct{Kind: frame.KindFunction, Name: last}
}

// isClosureName matches the runtime's funcN suffixes for anonymous functions.
func isClosureName(s string) bool {
	if !strings.HasPrefix(s, "func") {
		return false
	}
	for _, c := range s[len("func"):] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > len("func")
}
