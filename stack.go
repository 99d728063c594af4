// stack.go
//
// The operand stack presented by the host VM.
//
// A concrete implementation ships with the binding so it can be driven
// standalone (tests, the qdz tool); an embedding host with its own stack can
// mirror this contract instead. The backing array grows by doubling and never
// shrinks within a context's lifetime.
package qdcompress

// Stack is a LIFO operand stack of tagged values.
// The zero value is ready to use.
type Stack struct {
	vals []Value
	sp   int
}

// NewStack returns an empty operand stack.
func NewStack() *Stack { return &Stack{} }

// Push appends v at the top of the stack, growing the backing array as needed.
func (s *Stack) Push(v Value) {
	if s.sp >= len(s.vals) {
		newCap := len(s.vals) * 2
		if newCap == 0 {
			newCap = 16
		}
		ns := make([]Value, newCap)
		copy(ns, s.vals)
		s.vals = ns
	}
	s.vals[s.sp] = v
	s.sp++
}

// Pop removes and returns the top value. The second result is false when the
// stack is empty; callers treat that as a missing-operand error, never a panic.
func (s *Stack) Pop() (Value, bool) {
	if s.sp == 0 {
		return Null, false
	}
	s.sp--
	return s.vals[s.sp], true
}

// Top returns the top value without removing it (Null when empty).
func (s *Stack) Top() Value {
	if s.sp == 0 {
		return Null
	}
	return s.vals[s.sp-1]
}

// Len reports the number of values on the stack.
func (s *Stack) Len() int { return s.sp }
