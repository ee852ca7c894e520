package lambda

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// scope is the renaming context of one top-level evaluation. The active set
// collects every binder name met during the evaluation; fresh names are never
// drawn from it.
type scope struct {
	ev     *Evaluator
	arena  *Arena
	active []rune
}

func (s *scope) activate(names ...rune) {
	for _, r := range names {
		if !slices.Contains(s.active, r) {
			s.active = append(s.active, r)
		}
	}
}

// substitute replaces the free occurrences of target in t by copies of
// value, alpha-converting abstractions that would capture a free variable of
// value. t is consumed; value is only read.
func (s *scope) substitute(t Term, target rune, value Term) (Term, error) {
	if !HasFree(t, target) {
		return t, nil
	}
	switch t := t.(type) {
	case *Var:
		s.ev.stats.Substitutions++
		return s.arena.Copy(value), nil
	case *App:
		fun, err := s.substitute(t.Fun, target, value)
		if err != nil {
			return nil, err
		}
		arg, err := s.substitute(t.Arg, target, value)
		if err != nil {
			return nil, err
		}
		t.Fun, t.Arg = fun, arg
		return t, nil
	case *Abs:
		s.activate(t.Param)
		if HasFree(value, t.Param) {
			if err := s.alphaConvert(t, value); err != nil {
				return nil, err
			}
		}
		body, err := s.substitute(t.Body, target, value)
		if err != nil {
			return nil, err
		}
		t.Body = body
		return t, nil
	}
	return nil, fmt.Errorf("substitute: unexpected term %T", t)
}

// alphaConvert renames the binder of abs to a name that is neither active
// nor free in value or in the body, nor declared inside the body.
func (s *scope) alphaConvert(abs *Abs, value Term) error {
	s.activate(BinderNames(abs.Body)...)
	taken := lo.Union(s.active, FreeNames(value), FreeNames(abs.Body))
	fresh, err := s.ev.alphabet.Fresh(abs.Param, taken)
	if err != nil {
		return fmt.Errorf("alpha-convert λ%c: %w", abs.Param, err)
	}
	old := abs.Param
	s.arena.rename(abs, fresh)
	s.activate(fresh)
	s.ev.stats.AlphaConversions++
	s.ev.recordTrace(RuleAlpha, old, fresh)
	if debugEval {
		debugf("alpha %c -> %c in %s", old, fresh, abs)
	}
	return nil
}
