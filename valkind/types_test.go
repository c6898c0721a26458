package valkind

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAndOrXorTruthTables(t *testing.T) {
	vals := []Val3{X, V0, V1}

	cases := []struct {
		name string
		fn   func(a, b Val3) Val3
		want map[[2]Val3]Val3
	}{
		{
			name: "And",
			fn:   And,
			want: map[[2]Val3]Val3{
				{V0, V0}: V0, {V0, V1}: V0, {V0, X}: V0,
				{V1, V0}: V0, {V1, V1}: V1, {V1, X}: X,
				{X, V0}: V0, {X, V1}: X, {X, X}: X,
			},
		},
		{
			name: "Or",
			fn:   Or,
			want: map[[2]Val3]Val3{
				{V0, V0}: V0, {V0, V1}: V1, {V0, X}: X,
				{V1, V0}: V1, {V1, V1}: V1, {V1, X}: V1,
				{X, V0}: X, {X, V1}: V1, {X, X}: X,
			},
		},
		{
			name: "Xor",
			fn:   Xor,
			want: map[[2]Val3]Val3{
				{V0, V0}: V0, {V0, V1}: V1, {V0, X}: X,
				{V1, V0}: V1, {V1, V1}: V0, {V1, X}: X,
				{X, V0}: X, {X, V1}: X, {X, X}: X,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, a := range vals {
				for _, b := range vals {
					got := tc.fn(a, b)
					require.Equalf(t, tc.want[[2]Val3{a, b}], got, "%s(%v,%v)", tc.name, a, b)
				}
			}
		})
	}
}

func TestNot(t *testing.T) {
	require.Equal(t, V1, Not(V0))
	require.Equal(t, V0, Not(V1))
	require.Equal(t, X, Not(X))
}

func TestFval2(t *testing.T) {
	require.Equal(t, V0, Fzero.Val3())
	require.Equal(t, V1, Fone.Val3())
	require.Equal(t, Fone, Fzero.Opposite())
	require.Equal(t, Fzero, Fone.Opposite())
}

func TestBoolPanicsOnX(t *testing.T) {
	require.Panics(t, func() { X.Bool() })
	require.NotPanics(t, func() { V0.Bool() })
}
