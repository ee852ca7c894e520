package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vic/lambdac/pkg/lambda"
)

// Batch evaluates lines in parallel and returns one Result per line, in
// input order. Each worker owns its own evaluator, so lines never share
// renaming state. A failing line does not stop the others; only ctx
// cancellation does.
func Batch(ctx context.Context, lines []string, opts Options) ([]Result, error) {
	if opts.Format == nil {
		opts.Format, _ = ParseFormat("")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := Result{Line: i + 1, Input: line}
			if !lambda.Blank(line) {
				res = evalLine(newEvaluator(opts), opts.Format, line)
				res.Line = i + 1
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EvalLines evaluates lines with Batch and reports results through the
// session writers. Failed lines are reported with their line number.
func (s *Session) EvalLines(ctx context.Context, name string, lines []string) error {
	results, err := Batch(ctx, lines, s.opts)
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.Blank() {
			continue
		}
		s.record(res)
		if res.Err != nil {
			fmt.Fprintf(s.err, "%s:%d: error: %v\n", name, res.Line, res.Err)
			continue
		}
		fmt.Fprintln(s.out, res.Output)
	}
	return nil
}

// EvalFile evaluates every line of the file at path.
func (s *Session) EvalFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return fmt.Errorf("repl: read %s: %w", path, err)
	}
	return s.EvalLines(ctx, path, lines)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := newScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
