package lambda

import (
	"fmt"
	"log"
	"os"
)

var debugEval = os.Getenv("LAMBDA_DEBUG") != ""

func debugf(format string, args ...interface{}) {
	log.Printf("lambda: "+format, args...)
}

// Stats holds reduction statistics of the last evaluation.
type Stats struct {
	BetaReductions    uint64
	AlphaConversions  uint64
	Substitutions     uint64
	StuckApplications uint64
}

// Evaluator reduces terms to call-by-value normal form. It is not safe for
// concurrent use; use one Evaluator per goroutine.
type Evaluator struct {
	alphabet Alphabet
	stats    Stats

	traceBuf []TraceEvent
	traceIdx uint64
	traceOn  bool
}

// NewEvaluator returns an evaluator drawing fresh names from alphabet, or
// from DefaultAlphabet when alphabet is empty.
func NewEvaluator(alphabet Alphabet) *Evaluator {
	if len(alphabet) == 0 {
		alphabet = DefaultAlphabet
	}
	return &Evaluator{alphabet: alphabet}
}

func (ev *Evaluator) Alphabet() Alphabet {
	return ev.alphabet
}

func (ev *Evaluator) Stats() Stats {
	return ev.stats
}

// Eval reduces e and returns its normal form. e is consumed: the result
// reuses its nodes and its arena. Every call starts with an empty set of
// active binder names, so renaming decisions never carry over between calls.
//
// Terms without a normal form make Eval loop.
func (ev *Evaluator) Eval(e *Expr) (*Expr, error) {
	ev.stats = Stats{}
	ev.traceIdx = 0
	s := &scope{ev: ev, arena: e.Arena}
	t, err := s.eval(e.Term)
	if err != nil {
		return nil, err
	}
	return &Expr{Term: t, Arena: e.Arena}, nil
}

// EvalString parses and evaluates input.
func (ev *Evaluator) EvalString(input string) (*Expr, error) {
	e, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return ev.Eval(e)
}

func (s *scope) eval(t Term) (Term, error) {
	app, ok := t.(*App)
	if !ok {
		return t, nil
	}

	fun, err := s.eval(app.Fun)
	if err != nil {
		return nil, err
	}

	abs, ok := fun.(*Abs)
	if !ok {
		arg, err := s.eval(app.Arg)
		if err != nil {
			return nil, err
		}
		s.ev.stats.StuckApplications++
		s.ev.recordTrace(RuleStuck, 0, 0)
		app.Fun, app.Arg = fun, arg
		return app, nil
	}

	// Call by value: the operand is reduced even if the body discards it.
	arg, err := s.eval(app.Arg)
	if err != nil {
		return nil, err
	}

	if debugEval {
		debugf("beta %s %s", abs, arg)
	}
	param := abs.Param
	s.activate(param)
	s.ev.stats.BetaReductions++
	s.ev.recordTrace(RuleBeta, param, 0)

	body, err := s.substitute(abs.Release(), param, arg)
	if err != nil {
		return nil, fmt.Errorf("reduce λ%c: %w", param, err)
	}
	return s.eval(body)
}
