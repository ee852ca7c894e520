package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/vic/lambdac/pkg/cli"
	"github.com/vic/lambdac/pkg/config"
	"github.com/vic/lambdac/pkg/repl"
)

func main() {
	var (
		configFile  = flag.String("config", "", "YAML configuration file")
		alphabet    = flag.String("alphabet", "", "renaming alphabet, e.g. a-z or u-z")
		evalStr     = flag.String("e", "", "evaluate expression and exit")
		file        = flag.String("file", "", "evaluate every line of a file")
		watch       = flag.Bool("watch", false, "re-evaluate the input file whenever it changes")
		workers     = flag.Int("workers", 0, "parallel workers for file input")
		format      = flag.String("format", "flat", "output format: flat, grouped or source")
		showStats   = flag.Bool("stats", false, "print reduction statistics to stderr")
		traceN      = flag.Int("trace", 0, "print up to n reduction events per line, with -stats also per-line counts")
		showVersion = flag.Bool("version", false, "show version information")
		jsonOutput  = flag.Bool("json", false, "output version in JSON format")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [FILE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Evaluates untyped lambda terms, one per line, under call-by-value.\n")
		fmt.Fprintf(os.Stderr, "Reads FILE, or standard input when no file is given.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEXAMPLES:\n")
		fmt.Fprintf(os.Stderr, "  %s -e \"(fn x => x) y\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -stats church.lam\n", os.Args[0])
	}
	flag.Parse()

	if *showVersion {
		if err := cli.PrintVersion(os.Stdout, "lambdac", *jsonOutput); err != nil {
			cli.ExitWithError("%v", err)
		}
		return
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			cli.ExitWithError("%v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "alphabet":
			cfg.Alphabet = *alphabet
		case "workers":
			cfg.Workers = *workers
		case "stats":
			cfg.Stats = *showStats
		case "trace":
			cfg.Trace = *traceN
		}
	})
	if err := cfg.Validate(); err != nil {
		cli.ExitWithError("%v", err)
	}

	opts, err := sessionOptions(cfg, *format)
	if err != nil {
		cli.ExitWithError("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *evalStr != "":
		s := repl.NewSession(os.Stdout, os.Stderr, opts)
		out, err := s.EvalLine(*evalStr)
		if err != nil {
			cli.ExitWithError("%v", err)
		}
		fmt.Println(out)
		printStats(os.Stderr, cfg.Stats, s.Summary())

	case *file != "" || flag.NArg() > 0:
		path := *file
		if path == "" {
			path = flag.Arg(0)
		}
		s := repl.NewSession(os.Stdout, os.Stderr, opts)
		if *watch {
			err = s.Watch(ctx, path)
		} else {
			err = s.EvalFile(ctx, path)
		}
		if err != nil {
			cli.ExitWithError("%v", err)
		}
		printStats(os.Stderr, cfg.Stats, s.Summary())
		if s.Summary().Failed > 0 {
			os.Exit(1)
		}

	default:
		if *watch {
			cli.ExitWithError("-watch needs a file argument")
		}
		if term.IsTerminal(int(os.Stdin.Fd())) {
			opts.Prompt = cfg.Prompt
		}
		s := repl.NewSession(os.Stdout, os.Stderr, opts)
		if err := s.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
			cli.ExitWithError("reading stdin: %v", err)
		}
		printStats(os.Stderr, cfg.Stats, s.Summary())
	}
}

// sessionOptions builds the session options from cfg. Per-line stats are
// printed only when tracing is on; -stats alone prints the summary block.
func sessionOptions(cfg *config.Config, format string) (repl.Options, error) {
	alpha, err := cfg.ParsedAlphabet()
	if err != nil {
		return repl.Options{}, err
	}
	printer, err := repl.ParseFormat(format)
	if err != nil {
		return repl.Options{}, err
	}
	return repl.Options{
		Alphabet: alpha,
		Format:   printer,
		Stats:    cfg.Stats && cfg.Trace > 0,
		Trace:    cfg.Trace,
		Workers:  cfg.Workers,
	}, nil
}

func printStats(w io.Writer, enabled bool, sum repl.Summary) {
	if !enabled {
		return
	}
	seconds := sum.Elapsed.Seconds()

	fmt.Fprintf(w, "\nStats:\n")
	fmt.Fprintf(w, "Lines: %d (%d failed)\n", sum.Lines, sum.Failed)
	fmt.Fprintf(w, "Time: %v\n", sum.Elapsed)

	rows := []struct {
		name  string
		count uint64
	}{
		{"Beta Reductions:  ", sum.BetaReductions},
		{"Alpha Conversions:", sum.AlphaConversions},
		{"Substitutions:    ", sum.Substitutions},
		{"Stuck Applications:", sum.StuckApplications},
	}
	fmt.Fprintf(w, "\nBreakdown:\n")
	for _, r := range rows {
		fmt.Fprintf(w, "  %s %6d", r.name, r.count)
		if seconds > 0 {
			fmt.Fprintf(w, " (%.2f ops/sec)", float64(r.count)/seconds)
		}
		fmt.Fprintf(w, "\n")
	}
}
