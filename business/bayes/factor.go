package bayes

import "math"

// factor is a non-negative table over a set of variables. values is laid
// out with the first scope variable varying fastest.
type factor struct {
	scope  []int
	card   []int
	values []float64
}

func newFactor(scope, card []int) *factor {
	size := 1
	for _, c := range card {
		size *= c
	}
	return &factor{
		scope:  scope,
		card:   card,
		values: make([]float64, size),
	}
}

// unitFactor is the empty-scope factor with value 1.
func unitFactor() *factor {
	return &factor{values: []float64{1}}
}

func (f *factor) strides() []int {
	s := make([]int, len(f.card))
	acc := 1
	for i, c := range f.card {
		s[i] = acc
		acc *= c
	}
	return s
}

func (f *factor) position(v int) int {
	for i, u := range f.scope {
		if u == v {
			return i
		}
	}
	return -1
}

func (f *factor) contains(v int) bool {
	return f.position(v) >= 0
}

// next advances a mixed-radix assignment, first digit fastest.
func next(assign, card []int) {
	for k := range assign {
		assign[k]++
		if assign[k] < card[k] {
			return
		}
		assign[k] = 0
	}
}

// product multiplies two factors. The result scope is a's scope followed by
// the variables only b mentions.
func product(a, b *factor) *factor {
	scope := append([]int(nil), a.scope...)
	card := append([]int(nil), a.card...)
	bPos := make([]int, len(b.scope))
	for j, v := range b.scope {
		p := a.position(v)
		if p < 0 {
			p = len(scope)
			scope = append(scope, v)
			card = append(card, b.card[j])
		}
		bPos[j] = p
	}

	out := newFactor(scope, card)
	aStr, bStr := a.strides(), b.strides()
	assign := make([]int, len(scope))
	for idx := range out.values {
		ia, ib := 0, 0
		for i := range a.scope {
			ia += assign[i] * aStr[i]
		}
		for j, p := range bPos {
			ib += assign[p] * bStr[j]
		}
		out.values[idx] = a.values[ia] * b.values[ib]
		next(assign, card)
	}
	return out
}

// sumOut marginalizes v away.
func sumOut(f *factor, v int) *factor {
	p := f.position(v)
	if p < 0 {
		return f
	}

	scope := make([]int, 0, len(f.scope)-1)
	card := make([]int, 0, len(f.card)-1)
	for i := range f.scope {
		if i != p {
			scope = append(scope, f.scope[i])
			card = append(card, f.card[i])
		}
	}

	out := newFactor(scope, card)
	outStr := out.strides()
	assign := make([]int, len(f.scope))
	for _, val := range f.values {
		o, k := 0, 0
		for i := range f.scope {
			if i == p {
				continue
			}
			o += assign[i] * outStr[k]
			k++
		}
		out.values[o] += val
		next(assign, f.card)
	}
	return out
}

// reduce fixes v to state s and drops it from the scope.
func reduce(f *factor, v, s int) *factor {
	p := f.position(v)
	if p < 0 {
		return f
	}

	scope := make([]int, 0, len(f.scope)-1)
	card := make([]int, 0, len(f.card)-1)
	for i := range f.scope {
		if i != p {
			scope = append(scope, f.scope[i])
			card = append(card, f.card[i])
		}
	}

	out := newFactor(scope, card)
	outStr := out.strides()
	assign := make([]int, len(f.scope))
	for _, val := range f.values {
		if assign[p] == s {
			o, k := 0, 0
			for i := range f.scope {
				if i == p {
					continue
				}
				o += assign[i] * outStr[k]
				k++
			}
			out.values[o] = val
		}
		next(assign, f.card)
	}
	return out
}

// rescale divides f by its largest entry. Intermediate messages only matter
// up to a constant, and keeping the peak at 1 stops long evidence products
// from underflowing.
func rescale(f *factor) {
	peak := 0.0
	for _, v := range f.values {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 || math.IsInf(peak, 0) || peak == 1 {
		return
	}
	for i := range f.values {
		f.values[i] /= peak
	}
}
