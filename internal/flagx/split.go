// Package flagx turns interactive input lines into argument vectors for the
// command tree.
package flagx

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote is returned when a quoted argument is not closed.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// SplitArgs splits line into arguments the way a POSIX shell would for the
// common cases: whitespace separates arguments, single quotes keep their
// content literally, double quotes group words and honor \" and \\, and a
// backslash outside quotes escapes the next character.
//
// Examples:
//
//	remarks add 7 "called, will pay Friday"  -> [remarks add 7 called, will pay Friday]
//	records list --search='acme corp'         -> [records list --search=acme corp]
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
		case r == '\\':
			escaped, inArg = true, true
		case r == '\'' || r == '"':
			quote, inArg = r, true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 || escaped {
		return nil, ErrUnterminatedQuote
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
