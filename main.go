// Command ddbasic is a line-numbered BASIC REPL: type numbered lines to
// build a program, RUN it, or type statements directly for immediate
// execution.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/mwa-dayton/ddbasic/internal/logio"
	"github.com/mwa-dayton/ddbasic/internal/panicerr"
)

func main() {
	var (
		loadFile string
		trace    bool
		timeout  time.Duration
		noANSI   bool
		parens   bool
	)
	flag.StringVar(&loadFile, "load", "", "preload a program file before reading stdin")
	flag.BoolVar(&trace, "trace", false, "log each executed statement to stderr")
	flag.DurationVar(&timeout, "timeout", 0, "stop any running program after this long")
	flag.BoolVar(&noANSI, "no-ansi", false, "disable ANSI styling and the CLS escape")
	flag.BoolVar(&parens, "parens", false, "always parenthesize expressions in LIST output")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	opts := []Option{
		WithOutput(os.Stdout),
		WithANSI(!noANSI && term.IsTerminal(int(os.Stdin.Fd()))),
		WithParens(parens),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	if loadFile != "" {
		f, err := os.Open(loadFile)
		if err != nil {
			log.Errorf("%+v", err)
		} else {
			defer f.Close()
			opts = append(opts, WithInput(f))
		}
	}
	opts = append(opts, WithInput(os.Stdin))

	ip := New(opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if timeout != 0 {
		var tcancel context.CancelFunc
		ctx, tcancel = context.WithTimeout(ctx, timeout)
		defer tcancel()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				ip.RequestBreak()
				return nil
			case <-sigCh:
				ip.RequestBreak()
			}
		}
	})
	g.Go(func() error {
		defer cancel()
		return panicerr.Recover("repl", ip.REPL)
	})
	log.ErrorIf(g.Wait())
}
