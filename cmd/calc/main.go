package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	calculator "github.com/Gab-San/Simple-Calculator"
	"github.com/Gab-San/Simple-Calculator/internal/config"
	"github.com/Gab-San/Simple-Calculator/internal/history"
	"github.com/Gab-San/Simple-Calculator/internal/repl"
)

// closeTimeout bounds how long the command waits for the history to drain.
const closeTimeout = 2 * time.Second

type flags struct {
	config   string
	history  string
	verb     string
	echo     bool
	noColor  bool
	logLevel string
	in       string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: `Calc evaluates arithmetic expressions over + - * / and parentheses.

Each expression given as an argument is evaluated in order and its result
printed. Without arguments, calc reads one expression per line until EOF or
until a line contains quit or exit. The word ans stands for the previous
result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "configuration file (YAML)")
	fl.StringVar(&f.history, "history", "", `history file ("" disables history)`)
	fl.StringVar(&f.verb, "fmt", "", "result formatting string (default from config, %g)")
	fl.BoolVar(&f.echo, "echo", false, "print parse trees")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colored error output")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fl.StringVar(&f.in, "in", "", "input file, - for stdin (default stdin if no args given)")
	return cmd
}

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string, f *flags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if err := f.apply(cmd, cfg); err != nil {
		return err
	}
	lvl, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	hist, err := history.Open(cfg.History.Path, history.Options{
		Queue:    cfg.History.Queue,
		Truncate: cfg.History.Truncate,
		Log:      logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := hist.Close(ctx); err != nil {
			logger.Error("history not flushed", "path", hist.Path(), "err", err)
		}
	}()

	in, interactive, err := infile(cmd, f.in, len(args) == 0)
	if err != nil {
		return err
	}
	if in != nil {
		defer in.Close()
	}

	sess := repl.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), repl.Options{
		Prompt:      cfg.Prompt,
		Format:      cfg.Format,
		Echo:        cfg.Echo,
		Interactive: interactive,
		NoColor:     noColor(cfg.Color, cmd.ErrOrStderr()),
		Parse: []calculator.ParseOption{
			calculator.StackCapacity(cfg.Parser.StackCapacity),
			calculator.StackGrowth(cfg.Parser.StackGrowth),
		},
		History: hist,
		Log:     logger,
	})

	if in != nil {
		err := sess.Run(cmd.Context(), in)
		switch {
		case errors.Is(err, repl.ErrQuit), errors.Is(err, context.Canceled):
			// Both end the whole session, arguments included.
			return nil
		case err != nil:
			return err
		}
	}
	for _, arg := range args {
		err := sess.Exec(arg)
		switch {
		case errors.Is(err, repl.ErrQuit):
			return nil
		case err != nil:
			return fmt.Errorf("%s: %w", arg, err)
		}
	}
	return nil
}

// apply overrides the configuration with flags given on the command line.
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("history") {
		cfg.History.Path = f.history
	}
	if fl.Changed("fmt") {
		cfg.Format = f.verb
	}
	if fl.Changed("echo") {
		cfg.Echo = f.echo
	}
	if fl.Changed("no-color") && f.noColor {
		cfg.Color = config.ColorNever
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// infile opens the input to read lines from. With no name, stdin is used only
// when std is set. The input is interactive when it is a terminal.
func infile(cmd *cobra.Command, inname string, std bool) (io.ReadCloser, bool, error) {
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, false, fmt.Errorf("failed to open input: %w", err)
		}
		return in, false, nil
	case inname == "-", std:
		in := cmd.InOrStdin()
		return io.NopCloser(in), isTerminal(in), nil
	}
	return nil, false, nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func noColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return false
	case config.ColorNever:
		return true
	}
	return !isTerminal(w)
}
