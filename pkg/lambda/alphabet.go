package lambda

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// ErrVariableSpaceExhausted is returned when alpha-conversion cannot find a
// name that is not already in use.
var ErrVariableSpaceExhausted = errors.New("variable space exhausted")

// Alphabet is the ordered pool of names used for alpha-conversion.
type Alphabet []rune

// DefaultAlphabet is a..z.
var DefaultAlphabet = RuneRange('a', 'z')

// RuneRange returns the alphabet from..to inclusive.
func RuneRange(from, to rune) Alphabet {
	if to < from {
		return nil
	}
	return lo.RangeFrom(from, int(to-from)+1)
}

// ParseAlphabet reads an alphabet description. It accepts a range such as
// "u-z", a list of letters such as "xyz", or a mix ("a-c,x-z").
func ParseAlphabet(s string) (Alphabet, error) {
	var out Alphabet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		rs := []rune(part)
		switch {
		case len(rs) == 0:
			continue
		case len(rs) == 3 && rs[1] == '-':
			if !isLetter(rs[0]) || !isLetter(rs[2]) || rs[2] < rs[0] {
				return nil, fmt.Errorf("invalid alphabet range %q", part)
			}
			out = append(out, RuneRange(rs[0], rs[2])...)
		default:
			for _, r := range rs {
				if !isLetter(r) {
					return nil, fmt.Errorf("invalid alphabet letter %q in %q", r, part)
				}
				out = append(out, r)
			}
		}
	}
	out = lo.Uniq(out)
	if len(out) == 0 {
		return nil, fmt.Errorf("empty alphabet %q", s)
	}
	return out, nil
}

func (a Alphabet) String() string {
	return string(a)
}

// Fresh returns the first name after from, wrapping around, that is not in
// taken. If from is not part of the alphabet the search starts at its first
// letter.
func (a Alphabet) Fresh(from rune, taken []rune) (rune, error) {
	start := slices.Index(a, from) + 1
	for i := range a {
		r := a[(start+i)%len(a)]
		if !slices.Contains(taken, r) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("no fresh name for %c in %q: %w", from, a.String(), ErrVariableSpaceExhausted)
}
