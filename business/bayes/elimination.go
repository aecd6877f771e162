package bayes

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrImpossibleEvidence means every state of the query variable has
	// zero joint probability with the evidence.
	ErrImpossibleEvidence = errors.New("bayes: evidence has zero probability")
	ErrObservedQuery      = errors.New("bayes: query variable is observed")
)

// Evidence maps variable names to observed state names.
type Evidence map[string]string

// Distribution is a normalized marginal over one variable.
type Distribution struct {
	Variable string
	States   []string
	Probs    []float64
}

// Prob returns the probability of state.
func (d Distribution) Prob(state string) (float64, bool) {
	for i, s := range d.States {
		if s == state {
			return d.Probs[i], true
		}
	}
	return 0, false
}

// Engine computes P(query | evidence).
type Engine interface {
	Query(net *Network, query string, evidence Evidence) (Distribution, error)
}

// VariableElimination is exact sum-product inference. It is stateless and
// safe for concurrent use.
type VariableElimination struct{}

var _ Engine = VariableElimination{}

func (VariableElimination) Query(net *Network, query string, evidence Evidence) (Distribution, error) {
	if err := net.Validate(); err != nil {
		return Distribution{}, err
	}

	q, ok := net.index[query]
	if !ok {
		return Distribution{}, fmt.Errorf("%w: %q", ErrUnknownVariable, query)
	}

	observed, err := resolveEvidence(net, evidence)
	if err != nil {
		return Distribution{}, err
	}
	if _, ok := observed[q]; ok {
		return Distribution{}, fmt.Errorf("%w: %q", ErrObservedQuery, query)
	}

	// one factor per CPD, with observed variables sliced away
	factors := make([]*factor, 0, net.Len())
	for i := range net.vars {
		f := net.cpdFactor(i)
		for _, v := range append([]int(nil), f.scope...) {
			if s, ok := observed[v]; ok {
				f = reduce(f, v, s)
			}
		}
		factors = append(factors, f)
	}

	hidden := make([]int, 0, net.Len())
	for i := range net.vars {
		if _, ok := observed[i]; ok || i == q {
			continue
		}
		hidden = append(hidden, i)
	}

	for _, v := range eliminationOrder(factors, hidden) {
		factors = eliminate(factors, v)
	}

	joint := unitFactor()
	for _, f := range factors {
		joint = product(joint, f)
		rescale(joint)
	}

	// every other variable is gone, so the scope is exactly [q]
	if len(joint.scope) != 1 || joint.scope[0] != q {
		return Distribution{}, fmt.Errorf("bayes: residual scope %v after elimination", joint.scope)
	}

	total := 0.0
	for _, v := range joint.values {
		total += v
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return Distribution{}, ErrImpossibleEvidence
	}

	probs := make([]float64, len(joint.values))
	for i, v := range joint.values {
		probs[i] = v / total
	}

	return Distribution{
		Variable: query,
		States:   append([]string(nil), net.vars[q].States...),
		Probs:    probs,
	}, nil
}

func resolveEvidence(net *Network, evidence Evidence) (map[int]int, error) {
	observed := make(map[int]int, len(evidence))
	for name, state := range evidence {
		i, ok := net.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: evidence on %q", ErrUnknownVariable, name)
		}
		s := net.vars[i].StateIndex(state)
		if s < 0 {
			return nil, fmt.Errorf("%w: %q for %q", ErrUnknownState, state, name)
		}
		observed[i] = s
	}
	return observed, nil
}

// eliminate multiplies every factor mentioning v, sums v out and puts the
// resulting message back in place of them.
func eliminate(factors []*factor, v int) []*factor {
	rest := make([]*factor, 0, len(factors))
	var joint *factor
	for _, f := range factors {
		if !f.contains(v) {
			rest = append(rest, f)
			continue
		}
		if joint == nil {
			joint = f
		} else {
			joint = product(joint, f)
		}
	}
	if joint == nil {
		return factors
	}

	msg := sumOut(joint, v)
	rescale(msg)
	return append(rest, msg)
}

// eliminationOrder picks hidden variables greedily by fewest neighbours in
// the interaction graph, lowest index first on ties. Eliminating a variable
// connects its neighbours, the same fill-in the product would create.
func eliminationOrder(factors []*factor, hidden []int) []int {
	adj := make(map[int]map[int]struct{})
	link := func(a, b int) {
		if adj[a] == nil {
			adj[a] = make(map[int]struct{})
		}
		if a != b {
			adj[a][b] = struct{}{}
		}
	}
	for _, f := range factors {
		for _, a := range f.scope {
			for _, b := range f.scope {
				link(a, b)
			}
		}
	}

	remaining := append([]int(nil), hidden...)
	sort.Ints(remaining)

	order := make([]int, 0, len(remaining))
	for len(remaining) > 0 {
		best := 0
		for k := 1; k < len(remaining); k++ {
			if len(adj[remaining[k]]) < len(adj[remaining[best]]) {
				best = k
			}
		}
		v := remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)
		order = append(order, v)

		nbrs := make([]int, 0, len(adj[v]))
		for u := range adj[v] {
			nbrs = append(nbrs, u)
		}
		for _, a := range nbrs {
			delete(adj[a], v)
			for _, b := range nbrs {
				link(a, b)
			}
		}
		delete(adj, v)
	}
	return order
}
