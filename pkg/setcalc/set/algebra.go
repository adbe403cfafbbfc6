package set

// Union returns a ∪ b.
func Union(a, b Set) Set {
	out := make([]int64, 0, len(a.elems)+len(b.elems))
	i, j := 0, 0
	for i < len(a.elems) && j < len(b.elems) {
		switch {
		case a.elems[i] < b.elems[j]:
			out = append(out, a.elems[i])
			i++
		case a.elems[i] > b.elems[j]:
			out = append(out, b.elems[j])
			j++
		default:
			out = append(out, a.elems[i])
			i++
			j++
		}
	}
	out = append(out, a.elems[i:]...)
	out = append(out, b.elems[j:]...)
	return Set{elems: out}
}

// Intersection returns a ∩ b.
func Intersection(a, b Set) Set {
	var out []int64
	i, j := 0, 0
	for i < len(a.elems) && j < len(b.elems) {
		switch {
		case a.elems[i] < b.elems[j]:
			i++
		case a.elems[i] > b.elems[j]:
			j++
		default:
			out = append(out, a.elems[i])
			i++
			j++
		}
	}
	return Set{elems: out}
}

// Difference returns the elements of a that are not in b.
func Difference(a, b Set) Set {
	var out []int64
	j := 0
	for _, x := range a.elems {
		for j < len(b.elems) && b.elems[j] < x {
			j++
		}
		if j < len(b.elems) && b.elems[j] == x {
			continue
		}
		out = append(out, x)
	}
	return Set{elems: out}
}

// Product returns {x*y | x ∈ a, y ∈ b}.
func Product(a, b Set) Set {
	return pairwise(a, b, func(x, y int64) int64 { return x * y })
}

// Composition returns {x+y | x ∈ a, y ∈ b}.
func Composition(a, b Set) Set {
	return pairwise(a, b, func(x, y int64) int64 { return x + y })
}

func pairwise(a, b Set, f func(x, y int64) int64) Set {
	if len(a.elems) == 0 || len(b.elems) == 0 {
		return Set{}
	}
	out := make([]int64, 0, len(a.elems)*len(b.elems))
	for _, x := range a.elems {
		for _, y := range b.elems {
			out = append(out, f(x, y))
		}
	}
	return New(out...)
}
