package dump

import "runtime"

// Self captures the calling goroutine's own stack as records, innermost
// first. skip drops that many additional leading callers beyond Self itself.
// Used as the built-in demo source when no dump file is given.
func Self(skip int) *Goroutine {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	g := &Goroutine{ID: 0, State: "running"}
	frames := runtime.CallersFrames(pcs[:n])
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			g.Records = append(g.Records, &Record{
				Func: fr.Function,
				File: fr.File,
				Line: fr.Line,
			})
		}
		if !more {
			break
		}
	}
	return g
}
