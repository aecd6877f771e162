// Package bayes is a small discrete Bayesian network with exact inference by
// sum-product variable elimination.
//
// Variables must be declared before they are used as parents, so a network is
// always built in topological order and can never contain a cycle.
package bayes

import (
	"errors"
	"fmt"
	"math"
)

// cpdTolerance is how far a CPD row may drift from summing to 1.
const cpdTolerance = 1e-9

var (
	ErrDuplicateVariable = errors.New("bayes: duplicate variable")
	ErrUnknownVariable   = errors.New("bayes: unknown variable")
	ErrUnknownState      = errors.New("bayes: unknown state")
	ErrInvalidVariable   = errors.New("bayes: invalid variable")
	ErrInvalidCPD        = errors.New("bayes: invalid conditional probability table")
	ErrMissingCPD        = errors.New("bayes: variable has no conditional probability table")
)

// Variable is a discrete random variable with named states.
type Variable struct {
	Name   string
	States []string
}

// Card returns the number of states.
func (v Variable) Card() int {
	return len(v.States)
}

// StateIndex returns the position of state, or -1.
func (v Variable) StateIndex(state string) int {
	for i, s := range v.States {
		if s == state {
			return i
		}
	}
	return -1
}

// CPD is the conditional probability table of Variable given Parents.
//
// Values[j][s] = P(Variable = s | parents in configuration j), where the
// configuration index j counts with the first parent varying fastest.
type CPD struct {
	Variable string
	Parents  []string
	Values   [][]float64
}

// Network is a discrete Bayesian network. It is not safe for concurrent
// mutation, but a fully built network is read-only during inference.
type Network struct {
	vars    []Variable
	index   map[string]int
	parents [][]int
	cpds    []*CPD
}

func NewNetwork() *Network {
	return &Network{
		index: make(map[string]int),
	}
}

// AddVariable declares a variable. States must be non-empty and unique.
func (n *Network) AddVariable(name string, states ...string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidVariable)
	}
	if _, ok := n.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
	}
	if len(states) == 0 {
		return fmt.Errorf("%w: %q has no states", ErrInvalidVariable, name)
	}

	seen := make(map[string]struct{}, len(states))
	for _, s := range states {
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: %q has duplicate state %q", ErrInvalidVariable, name, s)
		}
		seen[s] = struct{}{}
	}

	n.index[name] = len(n.vars)
	n.vars = append(n.vars, Variable{Name: name, States: append([]string(nil), states...)})
	n.parents = append(n.parents, nil)
	n.cpds = append(n.cpds, nil)
	return nil
}

// SetCPD attaches the table for cpd.Variable. Parents must already be
// declared before the variable itself.
func (n *Network) SetCPD(cpd CPD) error {
	child, ok := n.index[cpd.Variable]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariable, cpd.Variable)
	}

	parents := make([]int, 0, len(cpd.Parents))
	configs := 1
	seen := make(map[int]struct{}, len(cpd.Parents))
	for _, name := range cpd.Parents {
		p, ok := n.index[name]
		if !ok {
			return fmt.Errorf("%w: parent %q of %q", ErrUnknownVariable, name, cpd.Variable)
		}
		if p >= child {
			return fmt.Errorf("%w: parent %q must be declared before %q", ErrInvalidCPD, name, cpd.Variable)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: parent %q listed twice for %q", ErrInvalidCPD, name, cpd.Variable)
		}
		seen[p] = struct{}{}
		parents = append(parents, p)
		configs *= n.vars[p].Card()
	}

	card := n.vars[child].Card()
	if len(cpd.Values) != configs {
		return fmt.Errorf("%w: %q has %d rows, want %d", ErrInvalidCPD, cpd.Variable, len(cpd.Values), configs)
	}

	values := make([][]float64, configs)
	for j, row := range cpd.Values {
		if len(row) != card {
			return fmt.Errorf("%w: %q row %d has %d entries, want %d", ErrInvalidCPD, cpd.Variable, j, len(row), card)
		}
		sum := 0.0
		for _, p := range row {
			if math.IsNaN(p) || p < 0 || p > 1 {
				return fmt.Errorf("%w: %q row %d has probability %v", ErrInvalidCPD, cpd.Variable, j, p)
			}
			sum += p
		}
		if math.Abs(sum-1) > cpdTolerance {
			return fmt.Errorf("%w: %q row %d sums to %v", ErrInvalidCPD, cpd.Variable, j, sum)
		}
		values[j] = append([]float64(nil), row...)
	}

	n.parents[child] = parents
	n.cpds[child] = &CPD{
		Variable: cpd.Variable,
		Parents:  append([]string(nil), cpd.Parents...),
		Values:   values,
	}
	return nil
}

// Validate reports whether every declared variable has a table.
func (n *Network) Validate() error {
	for i, v := range n.vars {
		if n.cpds[i] == nil {
			return fmt.Errorf("%w: %q", ErrMissingCPD, v.Name)
		}
	}
	return nil
}

// Variable looks a variable up by name.
func (n *Network) Variable(name string) (Variable, bool) {
	i, ok := n.index[name]
	if !ok {
		return Variable{}, false
	}
	return n.vars[i], true
}

// Variables returns the variables in declaration order.
func (n *Network) Variables() []Variable {
	out := make([]Variable, len(n.vars))
	copy(out, n.vars)
	return out
}

// CPD returns the table attached to name.
func (n *Network) CPD(name string) (CPD, bool) {
	i, ok := n.index[name]
	if !ok || n.cpds[i] == nil {
		return CPD{}, false
	}
	return *n.cpds[i], true
}

// Len returns the number of variables.
func (n *Network) Len() int {
	return len(n.vars)
}

// cpdFactor turns the table of variable i into a factor over
// [i, parents...] with i varying fastest, which is exactly the flattened
// Values layout.
func (n *Network) cpdFactor(i int) *factor {
	parents := n.parents[i]
	scope := make([]int, 0, len(parents)+1)
	card := make([]int, 0, len(parents)+1)
	scope = append(scope, i)
	card = append(card, n.vars[i].Card())
	for _, p := range parents {
		scope = append(scope, p)
		card = append(card, n.vars[p].Card())
	}

	f := newFactor(scope, card)
	k := n.vars[i].Card()
	for j, row := range n.cpds[i].Values {
		copy(f.values[j*k:(j+1)*k], row)
	}
	return f
}
