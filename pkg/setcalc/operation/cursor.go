package operation

import "github.com/sambeau/setcalc/pkg/setcalc/set"

// Cursor hands out input sets in order. Leaves take one set each as the
// tree is walked, which partitions the flat input sequence across it.
type Cursor struct {
	inputs []set.Set
	pos    int
}

// NewCursor returns a cursor positioned at the first of inputs.
func NewCursor(inputs []set.Set) *Cursor {
	return &Cursor{inputs: inputs}
}

// Next returns the next set and advances. It panics when exhausted; callers
// check the leaf count before walking a tree.
func (c *Cursor) Next() set.Set {
	s := c.inputs[c.pos]
	c.pos++
	return s
}
