package calculator_test

import (
	"testing"

	calculator "github.com/Gab-San/Simple-Calculator"
)

func FuzzEval(f *testing.F) {
	f.Add("8 - 3 - 2")
	f.Add("ans * 2")
	f.Add("((1)")
	f.Fuzz(func(t *testing.T, s string) {
		calculator.EvalString(s, calculator.Ans{})
	})
}
