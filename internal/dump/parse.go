package dump

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var (
	headerRe   = regexp.MustCompile(`^goroutine (\d+) \[([^\]]*)\]:$`)
	locationRe = regexp.MustCompile(`^(.+):(\d+)(?: \+0x[0-9a-fA-F]+)?$`)
)

// Parse reads a Go stack dump. The parser is line-oriented and tolerant:
// anything outside goroutine blocks (panic banners, exit status lines) is
// skipped. It fails only when the input contains no goroutine at all.
func Parse(r io.Reader) (*Dump, error) {
	d := &Dump{}
	var cur *Goroutine
	var pending *Record // call line waiting for its location line

	// a call line only becomes a record once its location line arrives;
	// stray text that merely looks like a call is dropped
	flush := func() {
		if cur != nil && pending != nil && (pending.File != "" || pending.CreatedBy) {
			cur.Records = append(cur.Records, pending)
		}
		pending = nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		if m := headerRe.FindStringSubmatch(line); m != nil {
			flush()
			id, _ := strconv.Atoi(m[1])
			state := m[2]
			// headers may append wait durations: [chan receive, 2 minutes]
			if i := strings.Index(state, ","); i >= 0 {
				state = state[:i]
			}
			cur = &Goroutine{ID: id, State: state}
			d.Goroutines = append(d.Goroutines, cur)
			continue
		}
		if cur == nil {
			continue
		}

		switch {
		case line == "":
			flush()
			cur = nil

		case strings.HasPrefix(line, "\t"):
			if pending == nil {
				continue
			}
			if m := locationRe.FindStringSubmatch(strings.TrimPrefix(line, "\t")); m != nil {
				pending.File = m[1]
				pending.Line, _ = strconv.Atoi(m[2])
			}
			flush()

		case strings.HasPrefix(line, "created by "):
			flush()
			fn := strings.TrimPrefix(line, "created by ")
			if i := strings.Index(fn, " in goroutine "); i >= 0 {
				fn = fn[:i]
			}
			pending = &Record{Func: fn, CreatedBy: true}

		default:
			flush()
			pending = parseCallLine(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(d.Goroutines) == 0 {
		return nil, errors.New("no goroutines found in input")
	}
	return d, nil
}

// parseCallLine splits "pkg.(*T).M(0x1, 0x2)" into function and argument
// text. The argument parens are the last balanced group; receiver parens sit
// before the final dot and are part of the name.
func parseCallLine(line string) *Record {
	if !strings.HasSuffix(line, ")") {
		return &Record{Func: line}
	}
	depth := 0
	for i := len(line) - 1; i >= 0; i-- {
		switch line[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return &Record{Func: line[:i], Args: line[i:]}
			}
		}
	}
	return &Record{Func: line}
}
