package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	calculator "github.com/Gab-San/Simple-Calculator"
)

type recorder struct {
	exprs   []string
	results []float64
}

func (r *recorder) Notify(expr string, result float64) {
	r.exprs = append(r.exprs, expr)
	r.results = append(r.results, result)
}

func session(opts Options) (*Session, *bytes.Buffer, *bytes.Buffer) {
	var out, errw bytes.Buffer
	opts.NoColor = true
	if opts.Log == nil {
		opts.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return New(&out, &errw, opts), &out, &errw
}

func TestEvalThreadsAns(t *testing.T) {
	hist := &recorder{}
	s, _, _ := session(Options{History: hist})

	r, err := s.Eval("3 + 4 * 2")
	require.NoError(t, err)
	assert.Equal(t, 11.0, r)

	r, err = s.Eval("ans * 2")
	require.NoError(t, err)
	assert.Equal(t, 22.0, r)
	v, ok := s.Ans().Value()
	assert.True(t, ok)
	assert.Equal(t, 22.0, v)

	assert.Equal(t, []string{"3+4*2", "ans*2"}, hist.exprs)
	assert.Equal(t, []float64{11, 22}, hist.results)
}

func TestEvalErrorKeepsAns(t *testing.T) {
	hist := &recorder{}
	s, _, _ := session(Options{History: hist})

	_, err := s.Eval("ans + 1")
	assert.True(t, errors.Is(err, calculator.ErrNoPriorResult))
	_, ok := s.Ans().Value()
	assert.False(t, ok)

	_, err = s.Eval("5")
	require.NoError(t, err)
	_, err = s.Eval("(5")
	assert.True(t, errors.Is(err, calculator.ErrMismatchedParentheses))
	_, err = s.Eval("5 $ 1")
	var ierr calculator.InputError
	assert.True(t, errors.As(err, &ierr))

	v, ok := s.Ans().Value()
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)
	assert.Equal(t, []string{"5"}, hist.exprs)
}

func TestEvalQuit(t *testing.T) {
	for _, line := range []string{"quit", "EXIT", "1 + exit", "quit $"} {
		s, _, _ := session(Options{})
		_, err := s.Eval(line)
		assert.ErrorIs(t, err, ErrQuit, line)
	}
}

func TestRun(t *testing.T) {
	hist := &recorder{}
	s, out, errw := session(Options{History: hist, Prompt: "> "})
	in := strings.NewReader("1 + 1\n\n   \nans * 3\n1 +\n6 / 0\nquit\n100\n")

	assert.ErrorIs(t, s.Run(context.Background(), in), ErrQuit)
	assert.Equal(t, "2\n6\n+Inf\n", out.String())
	assert.Contains(t, errw.String(), "error: ")
	assert.Contains(t, errw.String(), "missing operand")
	assert.Equal(t, []string{"1+1", "ans*3", "6/0"}, hist.exprs)
}

func TestRunEOF(t *testing.T) {
	s, out, errw := session(Options{})
	require.NoError(t, s.Run(context.Background(), strings.NewReader("2*3")))
	assert.Equal(t, "6\n", out.String())
	assert.Empty(t, errw.String())
}

func TestRunInteractive(t *testing.T) {
	s, out, _ := session(Options{Prompt: "> ", Interactive: true})
	assert.ErrorIs(t, s.Run(context.Background(), strings.NewReader("2\nexit\n")), ErrQuit)
	assert.Equal(t, "> 2\n> ", out.String())
}

func TestRunEcho(t *testing.T) {
	s, out, _ := session(Options{Echo: true, Format: "%.2f"})
	require.NoError(t, s.Run(context.Background(), strings.NewReader("(3 + 4) * 2\n")))
	assert.Equal(t, "([3 + 4] * 2) : 14.00\n", out.String())
}

func TestExec(t *testing.T) {
	s, out, _ := session(Options{})
	require.NoError(t, s.Exec("7 - 2 - 1"))
	require.NoError(t, s.Exec("ans / 8"))
	assert.Error(t, s.Exec("2 3"))
	assert.Equal(t, "4\n0.5\n", out.String())
}

func TestRunCancel(t *testing.T) {
	s, _, _ := session(Options{})
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, pr) }()
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

type failReader struct{}

func (failReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRunReadError(t *testing.T) {
	s, _, _ := session(Options{})
	err := s.Run(context.Background(), failReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestRunQuitAfterNumber(t *testing.T) {
	s, out, _ := session(Options{})
	err := s.Run(context.Background(), strings.NewReader("4\n2exit\n5\n"))
	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, "4\n", out.String())
}

func TestDebugLogsTokens(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, _, _ := session(Options{Log: log})
	_, err := s.Eval("1 + 2")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "component=repl")
	assert.Contains(t, logs.String(), "tokens")
}

func TestTokensNotLoggedAboveDebug(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))
	s, _, _ := session(Options{Log: log})
	_, err := s.Eval("1 + 2")
	require.NoError(t, err)
	assert.Empty(t, logs.String())
}
