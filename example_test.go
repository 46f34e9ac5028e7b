package calculator_test

import (
	"errors"
	"fmt"

	calculator "github.com/Gab-San/Simple-Calculator"
)

func ExampleParseString() {
	a, _ := calculator.ParseString("3 + 4 * 2", calculator.Ans{})
	b, _ := calculator.ParseString("(3 + 4) * 2", calculator.Ans{})
	c, _ := calculator.ParseString("8 - 3 - 2", calculator.Ans{})
	fmt.Println(calculator.Eval(a), calculator.Format(a))
	fmt.Println(calculator.Eval(b), calculator.Format(b))
	fmt.Println(calculator.Eval(c), calculator.Format(c))

	// Output:
	// 11 (3 + [4 * 2])
	// 14 ([3 + 4] * 2)
	// 3 ([8 - 3] - 2)
}

func ExampleAns() {
	var ans calculator.Ans
	for _, src := range []string{"ans + 1", "2 + 3", "ans * 2"} {
		r, err := calculator.EvalString(src, ans)
		if errors.Is(err, calculator.ErrNoPriorResult) {
			fmt.Println(src, "=", "no result yet")
			continue
		}
		ans = calculator.AnsOf(r)
		fmt.Println(src, "=", r)
	}

	// Output:
	// ans + 1 = no result yet
	// 2 + 3 = 5
	// ans * 2 = 10
}
