package calculator

import (
	"math"
	"strconv"
	"unsafe"
)

// DefaultStackGrowth is the number of elements a full Stack grows by.
const DefaultStackGrowth = 32

// Stack is a growable LIFO container. When its backing storage is full, its
// capacity grows by a fixed increment rather than by a factor. A Stack is not
// safe for concurrent use.
type Stack[T any] struct {
	items []T
	grow  int
}

// StackOption is an option for creating a Stack.
type StackOption func(*stackopts)

type stackopts struct {
	grow int
}

// GrowBy sets the number of elements a stack grows by when it is full.
// Values below 1 select DefaultStackGrowth.
func GrowBy(n int) StackOption {
	return func(o *stackopts) {
		o.grow = n
	}
}

// NewStack creates an empty stack with room for capacity elements. Panics if
// capacity is negative or if storage for that many elements could not be
// allocated on this platform.
func NewStack[T any](capacity int, opts ...StackOption) *Stack[T] {
	o := stackopts{grow: DefaultStackGrowth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.grow < 1 {
		o.grow = DefaultStackGrowth
	}
	checkcap[T](capacity)
	return &Stack[T]{
		items: make([]T, 0, capacity),
		grow:  o.grow,
	}
}

// checkcap panics if a stack of n elements of type T cannot be allocated.
func checkcap[T any](n int) {
	if n < 0 {
		panic("calculator: negative stack capacity " + strconv.Itoa(n))
	}
	var zero T
	sz := unsafe.Sizeof(zero)
	if sz != 0 && uint64(n) > uint64(math.MaxInt)/uint64(sz) {
		panic("calculator: stack capacity " + strconv.Itoa(n) + " overflows allocation size")
	}
}

// Push adds v to the top of the stack.
func (s *Stack[T]) Push(v T) {
	if len(s.items) == cap(s.items) {
		n := cap(s.items) + s.grow
		checkcap[T](n)
		items := make([]T, len(s.items), n)
		copy(items, s.items)
		s.items = items
	}
	s.items = append(s.items, v)
}

// Pop removes and returns the top of the stack. If the stack is empty, the
// result is the zero value and false.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	k := len(s.items) - 1
	v := s.items[k]
	// Drop the reference so the element can be collected.
	s.items[k] = zero
	s.items = s.items[:k]
	return v, true
}

// Peek returns the top of the stack without removing it. If the stack is
// empty, the result is the zero value and false.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// IsEmpty returns whether the stack has no elements.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Len returns the number of elements on the stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Cap returns the number of elements the stack can hold before it grows.
func (s *Stack[T]) Cap() int {
	return cap(s.items)
}

// Clear releases every element, top first. The capacity is kept.
func (s *Stack[T]) Clear() {
	for !s.IsEmpty() {
		s.Pop()
	}
}
