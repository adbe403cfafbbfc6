package operation

// NameGenerator yields A, B, ..., Z, AA, AB, ... for rendering leaves.
type NameGenerator struct {
	n int
}

// NewNameGenerator returns a generator starting at A.
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{}
}

// Next returns the next name.
func (g *NameGenerator) Next() string {
	name := columnName(g.n)
	g.n++
	return name
}

// columnName maps 0 → A, 25 → Z, 26 → AA, like spreadsheet columns.
func columnName(i int) string {
	var buf []byte
	for i++; i > 0; i = (i - 1) / 26 {
		buf = append([]byte{byte('A' + (i-1)%26)}, buf...)
	}
	return string(buf)
}
