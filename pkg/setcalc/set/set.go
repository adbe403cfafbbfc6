// Package set implements the integer sets the calculator operates on.
//
// A Set is an immutable, sorted collection of distinct int64 values. The
// zero value is the empty set.
package set

import (
	"io"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	"github.com/sambeau/setcalc/pkg/setcalc/errors"
)

// Set is an immutable set of integers.
type Set struct {
	elems []int64
}

// New returns the set holding elems. Duplicates collapse.
func New(elems ...int64) Set {
	if len(elems) == 0 {
		return Set{}
	}
	sorted := slices.Clone(elems)
	slices.Sort(sorted)
	return Set{elems: slices.Compact(sorted)}
}

// Len returns the number of elements.
func (s Set) Len() int {
	return len(s.elems)
}

// Contains reports whether x is a member of s.
func (s Set) Contains(x int64) bool {
	_, found := slices.BinarySearch(s.elems, x)
	return found
}

// Equal reports whether s and t hold the same elements.
func (s Set) Equal(t Set) bool {
	return slices.Equal(s.elems, t.elems)
}

// String renders s as {1, 2, 3}.
func (s Set) String() string {
	return s.render(func(x int64) string { return strconv.FormatInt(x, 10) })
}

// Format renders s like String, formatting each element with p so that
// digits are grouped for p's locale. A nil printer falls back to String.
func (s Set) Format(p *message.Printer) string {
	if p == nil {
		return s.String()
	}
	return s.render(func(x int64) string { return p.Sprintf("%d", x) })
}

func (s Set) render(elem func(int64) string) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, x := range s.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elem(x))
	}
	sb.WriteByte('}')
	return sb.String()
}

// TokenReader is the part of an input source a set is parsed from.
type TokenReader interface {
	NextToken() (string, error)
}

// Parse reads a count followed by that many integers.
func Parse(r TokenReader) (Set, error) {
	n, err := readInt(r, "set size")
	if err != nil {
		return Set{}, err
	}
	if n < 0 {
		return Set{}, errors.New(errors.MalformedToken, map[string]any{
			"What":  "set size",
			"Token": strconv.FormatInt(n, 10),
		}).WithHint("a set starts with the non-negative count of its numbers")
	}
	elems := make([]int64, 0, min(n, 1024))
	for i := int64(0); i < n; i++ {
		x, err := readInt(r, "set element")
		if err != nil {
			return Set{}, err
		}
		elems = append(elems, x)
	}
	return New(elems...), nil
}

func readInt(r TokenReader, what string) (int64, error) {
	tok, err := r.NextToken()
	if err != nil {
		if err == io.EOF {
			return 0, errors.New(errors.UnexpectedEnd, map[string]any{"What": what}).WithCause(err)
		}
		return 0, err
	}
	x, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, errors.New(errors.MalformedToken, map[string]any{
			"What":  what,
			"Token": tok,
		}).WithCause(err)
	}
	return x, nil
}
