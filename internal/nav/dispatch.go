package nav

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownCommand reports input that names no navigation command.
var ErrUnknownCommand = errors.New("unknown command")

// Commands lists the command names this package dispatches.
func Commands() []string {
	return []string{"up", "down", "frame", "show-stack"}
}

// Dispatch parses and executes one line of REPL input against the navigator.
// It returns the text to display. Empty input is a no-op.
func (n *Navigator) Dispatch(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "up":
		steps, err := optionalCount(name, args)
		if err != nil {
			return "", err
		}
		return n.Up(steps)

	case "down":
		steps, err := optionalCount(name, args)
		if err != nil {
			return "", err
		}
		return n.Down(steps)

	case "frame":
		if len(args) == 0 {
			return n.CurrentFrame()
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("frame: invalid index %q", args[0])
		}
		return n.Frame(idx, false)

	case "show-stack":
		head, tail, verbose, err := parseShowStackArgs(args)
		if err != nil {
			return "", err
		}
		if head == 0 && tail == 0 {
			head = n.DefaultHead
		}
		listing, err := n.ShowStack(head, tail, verbose)
		if err != nil {
			return "", err
		}
		if listing.Total == 0 {
			return listing.Text, nil
		}
		return fmt.Sprintf("%s\n(%d of %d frames)", listing.Text, listing.Shown, listing.Total), nil
	}

	return "", fmt.Errorf("%w %q%s", ErrUnknownCommand, name, suggestionSuffix(n.suggest(name)))
}

func suggestionSuffix(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf(", did you mean %q?", s)
}

// suggest returns the closest known command within a small edit distance.
func (n *Navigator) suggest(input string) string {
	best, bestDist := "", 3
	for _, c := range append(Commands(), n.Extra...) {
		if d := levenshtein.ComputeDistance(input, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func optionalCount(name string, args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	v, err := strconv.Atoi(args[0])
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s: invalid count %q", name, args[0])
	}
	return v, nil
}

func parseShowStackArgs(args []string) (head, tail int, verbose bool, err error) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-v", "--verbose":
			verbose = true
		case "-H", "--head":
			head, i, err = flagValue("show-stack", args, i)
			if err != nil {
				return 0, 0, false, err
			}
		case "-T", "--tail":
			tail, i, err = flagValue("show-stack", args, i)
			if err != nil {
				return 0, 0, false, err
			}
		default:
			return 0, 0, false, fmt.Errorf("show-stack: unknown flag %q", args[i])
		}
	}
	return head, tail, verbose, nil
}

func flagValue(name string, args []string, i int) (int, int, error) {
	if i+1 >= len(args) {
		return 0, i, fmt.Errorf("%s: flag %s needs a value", name, args[i])
	}
	v, err := strconv.Atoi(args[i+1])
	if err != nil || v < 1 {
		return 0, i, fmt.Errorf("%s: invalid value %q for %s", name, args[i+1], args[i])
	}
	return v, i + 1, nil
}
