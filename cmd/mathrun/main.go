package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/wasm-math/arith"
	"github.com/wippyai/wasm-math/errors"
	"github.com/wippyai/wasm-math/host"
)

func main() {
	var (
		moduleName  = flag.String("module", host.DefaultModuleName, "Host module name")
		list        = flag.Bool("list", false, "List host functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log host calls to stderr")
	)
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = l
	}
	defer func() { _ = log.Sync() }()
	host.SetLogger(log)

	if *list {
		listFuncs(os.Stdout)
		return
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*moduleName, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: mathrun [-module name] [-v] <add|div> <lhs> <rhs>")
		fmt.Fprintln(os.Stderr, "       mathrun -list")
		fmt.Fprintln(os.Stderr, "       mathrun -i  (interactive mode)")
		os.Exit(2)
	}

	if err := run(context.Background(), os.Stdout, *moduleName, log, args[0], args[1:]); err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) && e.Kind != errors.KindTrap {
			fmt.Fprintf(os.Stderr, "%s: %s\n", e.Class(), e.Message())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run makes one call through the host boundary and prints "<kind> <value>".
func run(ctx context.Context, w io.Writer, moduleName string, log *zap.Logger, fn string, literals []string) error {
	s, err := newSession(ctx, moduleName, log)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	args := make([]any, len(literals))
	for i, lit := range literals {
		args[i] = arith.ParseLiteral(lit)
	}

	v, err := s.caller.Call(ctx, fn, args...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %s\n", v.Kind(), v)
	return nil
}

func listFuncs(w io.Writer) {
	fmt.Fprintln(w, "Host functions:")
	for _, sig := range host.Signatures() {
		fmt.Fprintf(w, "  %s\n", sig)
	}
}

// session owns a runtime with the math host and a caller bound to it.
type session struct {
	rt     wazero.Runtime
	caller *host.Caller
}

func newSession(ctx context.Context, moduleName string, log *zap.Logger) (*session, error) {
	rt := host.NewRuntime(ctx)

	if _, err := host.Instantiate(ctx, rt, host.WithModuleName(moduleName), host.WithLogger(log)); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("instantiate host: %w", err)
	}

	c, err := host.NewCaller(ctx, rt, moduleName)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("create caller: %w", err)
	}

	return &session{rt: rt, caller: c}, nil
}

func (s *session) Close(ctx context.Context) {
	_ = s.caller.Close(ctx)
	_ = s.rt.Close(ctx)
}
