package calculator

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// DefaultStackCapacity is the initial capacity of the parser's stacks.
const DefaultStackCapacity = 10

type (
	capopt  int
	growopt int
)

// parsectx holds general data for parsing.
type parsectx struct {
	// ans is the value the word ans resolves to.
	ans Ans
	// capacity is the initial capacity of both stacks.
	capacity int
	// grow is the growth increment of both stacks.
	grow int
}

func newparsectx(ans Ans, opts []ParseOption) parsectx {
	p := parsectx{
		ans:      ans,
		capacity: DefaultStackCapacity,
		grow:     DefaultStackGrowth,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return p
}

// StackCapacity sets the initial capacity of the parser's operator and operand
// stacks. Negative values panic when parsing begins.
func StackCapacity(n int) ParseOption {
	return capopt(n)
}

func (o capopt) parseOption(p parsectx) parsectx {
	p.capacity = int(o)
	return p
}

// StackGrowth sets the number of elements the parser's stacks grow by when
// they fill. Values below 1 select DefaultStackGrowth.
func StackGrowth(n int) ParseOption {
	return growopt(n)
}

func (o growopt) parseOption(p parsectx) parsectx {
	p.grow = int(o)
	return p
}
