package ackermann

import "math/big"

// CallStack is the explicit stack of deferred outer calls. Each entry is the
// first argument of an A(m-1, ·) evaluation that waits for its inner result.
//
// A CallStack is mutated in place for the whole computation and must be owned
// by exactly one computation.
type CallStack struct {
	items    []*big.Int
	maxDepth int
}

// NewCallStack returns a stack holding the given values, bottom first.
func NewCallStack(values ...*big.Int) *CallStack {
	s := &CallStack{items: make([]*big.Int, 0, max(len(values), 16))}
	for _, v := range values {
		s.Push(v)
	}
	return s
}

// Push adds v on top of the stack.
func (s *CallStack) Push(v *big.Int) {
	s.items = append(s.items, v)
	if len(s.items) > s.maxDepth {
		s.maxDepth = len(s.items)
	}
}

// Pop removes and returns the top value. The boolean is false when the
// stack is empty.
func (s *CallStack) Pop() (*big.Int, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	last := len(s.items) - 1
	v := s.items[last]
	s.items[last] = nil
	s.items = s.items[:last]
	return v, true
}

// Peek returns the top value without removing it.
func (s *CallStack) Peek() (*big.Int, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the current depth.
func (s *CallStack) Len() int { return len(s.items) }

// Empty reports whether no deferred call remains.
func (s *CallStack) Empty() bool { return len(s.items) == 0 }

// MaxDepth returns the deepest the stack has been.
func (s *CallStack) MaxDepth() int { return s.maxDepth }
