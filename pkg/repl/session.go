// Package repl drives the evaluator line by line: an interactive loop, a
// parallel batch mode and a file watcher.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vic/lambdac/pkg/lambda"
)

// Format renders an evaluation result.
type Format func(lambda.Term) string

// ParseFormat maps a format name to its printer: "flat" (default),
// "grouped" or "source".
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "flat":
		return func(t lambda.Term) string { return t.String() }, nil
	case "grouped":
		return lambda.Grouped, nil
	case "source":
		return lambda.Source, nil
	default:
		return nil, fmt.Errorf("repl: unknown format %q", name)
	}
}

// Options configure a Session.
type Options struct {
	Alphabet lambda.Alphabet
	Format   Format
	Prompt   string
	// Stats prints per-line reduction counts to the error writer.
	Stats bool
	// Trace prints up to Trace reduction events per line; 0 disables.
	Trace   int
	Workers int
}

// Session evaluates lines independently and writes results to Out and
// diagnostics to Err.
type Session struct {
	opts Options
	out  io.Writer
	err  io.Writer
	ev   *lambda.Evaluator

	total   lambda.Stats
	lines   int
	failed  int
	elapsed time.Duration
}

func NewSession(out, errOut io.Writer, opts Options) *Session {
	if opts.Format == nil {
		opts.Format, _ = ParseFormat("")
	}
	return &Session{
		opts: opts,
		out:  out,
		err:  errOut,
		ev:   newEvaluator(opts),
	}
}

func newEvaluator(opts Options) *lambda.Evaluator {
	ev := lambda.NewEvaluator(opts.Alphabet)
	if opts.Trace > 0 {
		ev.EnableTrace(opts.Trace)
	}
	return ev
}

// Summary holds totals over every line a session evaluated.
type Summary struct {
	Lines   int
	Failed  int
	Elapsed time.Duration
	lambda.Stats
}

func (s *Session) Summary() Summary {
	return Summary{Lines: s.lines, Failed: s.failed, Elapsed: s.elapsed, Stats: s.total}
}

// EvalLine parses and evaluates one line. Blank lines evaluate to "".
func (s *Session) EvalLine(line string) (string, error) {
	if lambda.Blank(line) {
		return "", nil
	}
	res := evalLine(s.ev, s.opts.Format, line)
	s.record(res)
	return res.Output, res.Err
}

// Run reads lines from r until end of input or until ctx is done. A line
// that fails is reported to the error writer and the loop continues.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	scanner := newScanner(r)
	for {
		if s.opts.Prompt != "" {
			fmt.Fprint(s.out, s.opts.Prompt)
		}
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := s.EvalLine(scanner.Text())
		if err != nil {
			fmt.Fprintf(s.err, "error: %v\n", err)
			continue
		}
		if out != "" {
			fmt.Fprintln(s.out, out)
		}
	}
	if s.opts.Prompt != "" {
		fmt.Fprintln(s.out)
	}
	return scanner.Err()
}

// MaxLineSize is the longest input line a session accepts.
const MaxLineSize = 16 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return scanner
}

// Result is the outcome of evaluating one input line.
type Result struct {
	Line    int
	Input   string
	Output  string
	Err     error
	Stats   lambda.Stats
	Trace   []lambda.TraceEvent
	Elapsed time.Duration
}

// Blank reports whether the line held nothing to evaluate.
func (r Result) Blank() bool {
	return r.Err == nil && r.Output == "" && lambda.Blank(r.Input)
}

func evalLine(ev *lambda.Evaluator, format Format, line string) Result {
	res := Result{Input: line}
	start := time.Now()
	e, err := ev.EvalString(line)
	res.Elapsed = time.Since(start)
	res.Stats = ev.Stats()
	res.Trace = ev.TraceSnapshot()
	if err != nil {
		res.Err = err
		return res
	}
	res.Output = format(e.Term)
	return res
}

func (s *Session) record(res Result) {
	s.lines++
	if res.Err != nil {
		s.failed++
	}
	s.elapsed += res.Elapsed
	s.total.BetaReductions += res.Stats.BetaReductions
	s.total.AlphaConversions += res.Stats.AlphaConversions
	s.total.Substitutions += res.Stats.Substitutions
	s.total.StuckApplications += res.Stats.StuckApplications

	if s.opts.Stats {
		fmt.Fprintf(s.err, "stats: %d beta, %d alpha, %d substitutions, %d stuck in %v\n",
			res.Stats.BetaReductions, res.Stats.AlphaConversions,
			res.Stats.Substitutions, res.Stats.StuckApplications, res.Elapsed)
	}
	for _, ev := range res.Trace {
		fmt.Fprintf(s.err, "trace: %s\n", formatEvent(ev))
	}
}

func formatEvent(ev lambda.TraceEvent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d %s", ev.Step, ev.Rule)
	switch ev.Rule {
	case lambda.RuleBeta:
		fmt.Fprintf(&sb, " %c", ev.Binder)
	case lambda.RuleAlpha:
		fmt.Fprintf(&sb, " %c -> %c", ev.Binder, ev.Renamed)
	}
	return sb.String()
}
