package bayes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetwork_AddVariable(t *testing.T) {
	net := NewNetwork()
	require.NoError(t, net.AddVariable("a", "x", "y"))

	tests := []struct {
		name    string
		varName string
		states  []string
		wantErr error
	}{
		{"duplicate", "a", []string{"x"}, ErrDuplicateVariable},
		{"empty name", "", []string{"x"}, ErrInvalidVariable},
		{"no states", "b", nil, ErrInvalidVariable},
		{"duplicate state", "b", []string{"x", "x"}, ErrInvalidVariable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := net.AddVariable(tt.varName, tt.states...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, 1, net.Len())
	v, ok := net.Variable("a")
	require.True(t, ok)
	assert.Equal(t, 2, v.Card())
	assert.Equal(t, 1, v.StateIndex("y"))
	assert.Equal(t, -1, v.StateIndex("z"))
}

func TestNetwork_SetCPD(t *testing.T) {
	build := func(t *testing.T) *Network {
		net := NewNetwork()
		require.NoError(t, net.AddVariable("p", "p0", "p1"))
		require.NoError(t, net.AddVariable("c", "c0", "c1"))
		return net
	}

	tests := []struct {
		name    string
		cpd     CPD
		wantErr error
	}{
		{
			name: "valid",
			cpd:  CPD{Variable: "c", Parents: []string{"p"}, Values: [][]float64{{0.2, 0.8}, {0.9, 0.1}}},
		},
		{
			name:    "unknown variable",
			cpd:     CPD{Variable: "x", Values: [][]float64{{1}}},
			wantErr: ErrUnknownVariable,
		},
		{
			name:    "unknown parent",
			cpd:     CPD{Variable: "c", Parents: []string{"x"}, Values: [][]float64{{0.5, 0.5}}},
			wantErr: ErrUnknownVariable,
		},
		{
			name:    "parent declared after child",
			cpd:     CPD{Variable: "p", Parents: []string{"c"}, Values: [][]float64{{0.5, 0.5}, {0.5, 0.5}}},
			wantErr: ErrInvalidCPD,
		},
		{
			name:    "row count mismatch",
			cpd:     CPD{Variable: "c", Parents: []string{"p"}, Values: [][]float64{{0.5, 0.5}}},
			wantErr: ErrInvalidCPD,
		},
		{
			name:    "row width mismatch",
			cpd:     CPD{Variable: "c", Parents: []string{"p"}, Values: [][]float64{{1}, {1}}},
			wantErr: ErrInvalidCPD,
		},
		{
			name:    "row does not sum to one",
			cpd:     CPD{Variable: "c", Parents: []string{"p"}, Values: [][]float64{{0.2, 0.7}, {0.9, 0.1}}},
			wantErr: ErrInvalidCPD,
		},
		{
			name:    "negative probability",
			cpd:     CPD{Variable: "c", Parents: []string{"p"}, Values: [][]float64{{-0.2, 1.2}, {0.9, 0.1}}},
			wantErr: ErrInvalidCPD,
		},
		{
			name:    "nan probability",
			cpd:     CPD{Variable: "c", Parents: []string{"p"}, Values: [][]float64{{math.NaN(), 1}, {0.9, 0.1}}},
			wantErr: ErrInvalidCPD,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := build(t).SetCPD(tt.cpd)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNetwork_CPDIsCopied(t *testing.T) {
	net := NewNetwork()
	require.NoError(t, net.AddVariable("a", "x", "y"))
	row := []float64{0.4, 0.6}
	require.NoError(t, net.SetCPD(CPD{Variable: "a", Values: [][]float64{row}}))

	row[0] = 0.9

	cpd, ok := net.CPD("a")
	require.True(t, ok)
	assert.Equal(t, 0.4, cpd.Values[0][0])
	assert.NoError(t, net.Validate())
}
