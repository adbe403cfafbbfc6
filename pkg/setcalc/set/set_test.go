package set

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sambeau/setcalc/pkg/setcalc/errors"
)

// fields feeds whitespace-separated tokens to Parse.
type fields struct {
	toks []string
}

func tokens(s string) *fields { return &fields{toks: strings.Fields(s)} }

func (f *fields) NextToken() (string, error) {
	if len(f.toks) == 0 {
		return "", io.EOF
	}
	tok := f.toks[0]
	f.toks = f.toks[1:]
	return tok, nil
}

func TestNewSortsAndDeduplicates(t *testing.T) {
	s := New(3, 1, 2, 3, 1)
	assert.Equal(t, []int64{1, 2, 3}, s.elems)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(4))
}

func TestString(t *testing.T) {
	tc := []struct {
		name string
		set  Set
		want string
	}{
		{"empty", Set{}, "{}"},
		{"single", New(7), "{7}"},
		{"several", New(3, -1, 2), "{-1, 2, 3}"},
	}
	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.String())
		})
	}
}

func TestFormatWithLocale(t *testing.T) {
	p := message.NewPrinter(language.English)
	assert.Equal(t, "{2, 1,000}", New(1000, 2).Format(p))
	assert.Equal(t, "{2, 1000}", New(1000, 2).Format(nil))
}

func TestAlgebra(t *testing.T) {
	a := New(1, 2, 3)
	b := New(2, 3, 4)
	empty := Set{}

	tc := []struct {
		name string
		got  Set
		want Set
	}{
		{"union", Union(a, b), New(1, 2, 3, 4)},
		{"union with empty", Union(a, empty), a},
		{"intersection", Intersection(a, b), New(2, 3)},
		{"intersection disjoint", Intersection(New(1), New(2)), empty},
		{"difference", Difference(a, b), New(1)},
		{"difference reversed", Difference(b, a), New(4)},
		{"difference with empty", Difference(a, empty), a},
		{"product", Product(New(1, 2), New(3, 4)), New(3, 4, 6, 8)},
		{"product with empty", Product(a, empty), empty},
		{"composition", Composition(New(1, 2), New(10, 20)), New(11, 12, 21, 22)},
		{"composition collapses", Composition(New(1, 2), New(1, 2)), New(2, 3, 4)},
	}
	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.got), "want %s, got %s", tt.want, tt.got)
		})
	}
}

func TestParse(t *testing.T) {
	src := tokens("2 1 2 3 4 4 4")
	s, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "{1, 2}", s.String())

	s, err = Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "{4}", s.String())
	assert.Empty(t, src.toks)
}

func TestParseEmptySet(t *testing.T) {
	s, err := Parse(tokens("0"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestParseErrors(t *testing.T) {
	tc := []struct {
		name  string
		input string
		code  string
	}{
		{"bad count", "x 1 2", errors.MalformedToken},
		{"negative count", "-1", errors.MalformedToken},
		{"bad element", "2 1 y", errors.MalformedToken},
		{"missing elements", "3 1 2", errors.UnexpectedEnd},
		{"nothing", "", errors.UnexpectedEnd},
	}
	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tokens(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.Code(err))
		})
	}
}
