// Package repl runs an interactive calculator session over line-oriented
// text.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/kr/pretty"

	calculator "github.com/Gab-San/Simple-Calculator"
)

// ErrQuit is returned for a line that asks to end the session.
var ErrQuit = errors.New("quit requested")

// Notifier receives every successful evaluation. Notify must not block.
type Notifier interface {
	Notify(expr string, result float64)
}

// Options configures a Session.
type Options struct {
	// Prompt is printed before each line when Interactive is set.
	Prompt string
	// Format is the fmt verb results are printed with. Default "%g".
	Format string
	// Echo prints each parse tree before its result.
	Echo bool
	// Interactive enables the prompt.
	Interactive bool
	// NoColor disables colored error output.
	NoColor bool
	// Parse holds options passed to the parser.
	Parse []calculator.ParseOption
	// History receives successful evaluations. May be nil.
	History Notifier
	// Log receives diagnostics. Nil uses slog.Default().
	Log *slog.Logger
}

// Session is a calculator session. It holds the result of the last successful
// evaluation, which ans refers to. A Session is not safe for concurrent use.
type Session struct {
	opts Options
	out  io.Writer
	errw io.Writer
	red  *color.Color
	log  *slog.Logger
	ans  calculator.Ans
}

// New creates a session writing results to out and errors to errw.
func New(out, errw io.Writer, opts Options) *Session {
	if opts.Format == "" {
		opts.Format = "%g"
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	red := color.New(color.FgRed)
	if opts.NoColor {
		red.DisableColor()
	} else {
		red.EnableColor()
	}
	return &Session{
		opts: opts,
		out:  out,
		errw: errw,
		red:  red,
		log:  opts.Log.With("component", "repl"),
	}
}

// Ans returns the result of the last successful evaluation.
func (s *Session) Ans() calculator.Ans {
	return s.ans
}

// Eval evaluates one line. On success the result becomes the session's ans
// and is sent to the history. A line containing quit or exit returns ErrQuit
// without evaluating anything. Errors leave ans unchanged.
func (s *Session) Eval(line string) (float64, error) {
	r, _, err := s.eval(line)
	return r, err
}

// Exec evaluates one line like Eval and prints the result the way Run does.
func (s *Session) Exec(line string) error {
	r, f, err := s.eval(line)
	if err != nil {
		return err
	}
	return s.print(f, r)
}

func (s *Session) eval(line string) (float64, calculator.Factor, error) {
	toks, err := calculator.TokenizeString(line)
	if calculator.HasQuit(toks) {
		return 0, nil, ErrQuit
	}
	if err != nil {
		return 0, nil, err
	}
	if s.log.Enabled(context.Background(), slog.LevelDebug) {
		s.log.Debug("tokens", "line", line, "tokens", pretty.Sprint(toks))
	}
	f, err := calculator.Parse(toks, s.ans, s.opts.Parse...)
	if err != nil {
		return 0, nil, err
	}
	r := calculator.Eval(f)
	s.ans = calculator.AnsOf(r)
	if s.opts.History != nil {
		s.opts.History.Notify(calculator.JoinTokens(toks), r)
	}
	return r, f, nil
}

// Run reads lines from in until EOF, a quit line, or the end of ctx. Results
// and errors are printed as they come; an invalid line does not end the
// session. The result is nil at EOF and ErrQuit after a quit line; otherwise
// it is the error from reading, writing, or ctx.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		if err := s.prompt(); err != nil {
			return err
		}
		var line string
		var ok bool
		select {
		case line, ok = <-lines:
		case <-ctx.Done():
			return ctx.Err()
		}
		if !ok {
			select {
			case err := <-readErr:
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
			default:
			}
			if s.opts.Interactive {
				fmt.Fprintln(s.out)
			}
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, f, err := s.eval(line)
		switch {
		case errors.Is(err, ErrQuit):
			s.log.Debug("quit", "line", line)
			return ErrQuit
		case err != nil:
			s.log.Info("evaluation failed", "line", line, "err", err)
			if _, werr := s.red.Fprintf(s.errw, "error: %v\n", err); werr != nil {
				return werr
			}
			continue
		}
		if err := s.print(f, r); err != nil {
			return err
		}
	}
}

func (s *Session) prompt() error {
	if !s.opts.Interactive || s.opts.Prompt == "" {
		return nil
	}
	_, err := io.WriteString(s.out, s.opts.Prompt)
	return err
}

func (s *Session) print(f calculator.Factor, r float64) error {
	if s.opts.Echo {
		if _, err := fmt.Fprintf(s.out, "%s : ", calculator.Format(f)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(s.out, s.opts.Format+"\n", r)
	return err
}
