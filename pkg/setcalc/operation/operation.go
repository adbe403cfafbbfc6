// Package operation implements the expression trees the calculator builds.
//
// A Node is either an Identity leaf, which stands for one input set, or a
// binary composite over two earlier nodes. Composites share their operands
// by pointer, so the same node may appear under several parents. Nodes are
// never modified after construction, which keeps every tree acyclic.
//
// Evaluation and rendering walk the tree depth-first, left operand first,
// and consume the flat input sequence through a Cursor in that same order.
package operation

import (
	"strings"

	"golang.org/x/text/message"

	"github.com/sambeau/setcalc/pkg/setcalc/errors"
	"github.com/sambeau/setcalc/pkg/setcalc/set"
)

// MaxLeaves bounds the number of input sets one operation may take.
// Shared operands double the count at every level, so without a bound a
// short chain of commands builds a tree too wide to evaluate or print.
const MaxLeaves = 1024

// Kind tags the variant of a Node.
type Kind uint8

const (
	Identity Kind = iota
	Union
	Intersection
	Difference
	Product
	Composition
)

type kindInfo struct {
	name    string
	symbol  string
	combine func(a, b set.Set) set.Set
}

// kinds is the dispatch table for every variant.
var kinds = [...]kindInfo{
	Identity:     {name: "identity"},
	Union:        {name: "union", symbol: "u", combine: set.Union},
	Intersection: {name: "intersection", symbol: "^", combine: set.Intersection},
	Difference:   {name: "difference", symbol: "-", combine: set.Difference},
	Product:      {name: "product", symbol: "*", combine: set.Product},
	Composition:  {name: "composition", symbol: "o", combine: set.Composition},
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kinds) {
		return kinds[k].name
	}
	return "unknown"
}

// Symbol returns the infix operator used when rendering the kind.
func (k Kind) Symbol() string {
	if int(k) < len(kinds) {
		return kinds[k].symbol
	}
	return "?"
}

// IsComposite reports whether nodes of kind k have operands.
func (k Kind) IsComposite() bool {
	return k != Identity && int(k) < len(kinds)
}

// Node is one element of an expression tree.
type Node struct {
	kind        Kind
	left, right *Node
	leaves      int
}

// NewIdentity returns a leaf.
func NewIdentity() *Node {
	return &Node{kind: Identity, leaves: 1}
}

// Compose returns a node combining left and right with kind. It fails with
// TooManyInputs when the result would take more than MaxLeaves input sets.
// It panics if kind is not a composite kind or an operand is nil.
func Compose(kind Kind, left, right *Node) (*Node, error) {
	if !kind.IsComposite() {
		panic("operation: " + kind.String() + " is not a composite kind")
	}
	if left == nil || right == nil {
		panic("operation: nil operand")
	}
	// operands never exceed MaxLeaves, so the sum cannot overflow
	if left.leaves > MaxLeaves-right.leaves {
		return nil, errors.New(errors.TooManyInputs, map[string]any{
			"Got": left.leaves + right.leaves,
			"Max": MaxLeaves,
		})
	}
	return &Node{
		kind:   kind,
		left:   left,
		right:  right,
		leaves: left.leaves + right.leaves,
	}, nil
}

// NewComposite is like Compose but panics when the leaf bound is exceeded.
func NewComposite(kind Kind, left, right *Node) *Node {
	n, err := Compose(kind, left, right)
	if err != nil {
		panic("operation: " + err.Error())
	}
	return n
}

// Kind returns the variant of n.
func (n *Node) Kind() Kind { return n.kind }

// Left returns the left operand, or nil for a leaf.
func (n *Node) Left() *Node { return n.left }

// Right returns the right operand, or nil for a leaf.
func (n *Node) Right() *Node { return n.right }

// LeafCount returns the number of input sets a full evaluation consumes.
func (n *Node) LeafCount() int { return n.leaves }

// Evaluate computes n on inputs, which must hold exactly LeafCount sets in
// depth-first, left-to-right leaf order.
func (n *Node) Evaluate(inputs []set.Set) (set.Set, error) {
	if len(inputs) != n.leaves {
		return set.Set{}, arityError(n.leaves, len(inputs))
	}
	c := NewCursor(inputs)
	return n.eval(c), nil
}

func (n *Node) eval(c *Cursor) set.Set {
	if n.kind == Identity {
		return c.Next()
	}
	a := n.left.eval(c)
	b := n.right.eval(c)
	return kinds[n.kind].combine(a, b)
}

// RenderInputs renders n with every leaf replaced by its input set.
// A nil printer renders elements without locale formatting.
func (n *Node) RenderInputs(inputs []set.Set, p *message.Printer) (string, error) {
	if len(inputs) != n.leaves {
		return "", arityError(n.leaves, len(inputs))
	}
	c := NewCursor(inputs)
	var sb strings.Builder
	n.render(&sb, func() string { return c.Next().Format(p) })
	return sb.String(), nil
}

// RenderNames renders n with a fresh name from gen for every leaf.
func (n *Node) RenderNames(gen *NameGenerator) string {
	var sb strings.Builder
	n.render(&sb, gen.Next)
	return sb.String()
}

// String renders n with names starting from A.
func (n *Node) String() string {
	return n.RenderNames(NewNameGenerator())
}

func (n *Node) render(sb *strings.Builder, leaf func() string) {
	if n.kind == Identity {
		sb.WriteString(leaf())
		return
	}
	sb.WriteByte('(')
	n.left.render(sb, leaf)
	sb.WriteByte(' ')
	sb.WriteString(n.kind.Symbol())
	sb.WriteByte(' ')
	n.right.render(sb, leaf)
	sb.WriteByte(')')
}

func arityError(want, got int) *errors.CalcError {
	return errors.New(errors.ArityMismatch, map[string]any{"Want": want, "Got": got})
}
