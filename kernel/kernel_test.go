package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

func TestSqExp(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		amp, ls  float64
		expected float64
	}{
		{
			name:     "same point",
			x:        1.5,
			y:        1.5,
			amp:      1,
			ls:       1,
			expected: 1,
		},
		{
			name:     "unit distance",
			x:        0,
			y:        1,
			amp:      1,
			ls:       1,
			expected: math.Exp(-0.5),
		},
		{
			name:     "distance two",
			x:        0,
			y:        2,
			amp:      1,
			ls:       1,
			expected: math.Exp(-2),
		},
		{
			name:     "length scale two",
			x:        0,
			y:        2,
			amp:      1,
			ls:       2,
			expected: math.Exp(-0.5),
		},
		{
			name:     "amplitude scales squared",
			x:        0,
			y:        1,
			amp:      3,
			ls:       1,
			expected: 9 * math.Exp(-0.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := SqExp{Amplitude: tt.amp, Length: tt.ls}
			require.InDelta(t, tt.expected, k.Cov(tt.x, tt.y), 1e-12)
			// Symmetry.
			require.Equal(t, k.Cov(tt.x, tt.y), k.Cov(tt.y, tt.x))
		})
	}
}

func TestSqExpDHyper(t *testing.T) {
	const x, y = 0.3, 1.7
	hypers := [][2]float64{
		{1, 1},
		{0.5, 2},
		{2.5, 0.7},
	}
	for _, h := range hypers {
		k := SqExp{Amplitude: h[0], Length: h[1]}
		deriv := make([]float64, k.NumHyper())
		v := k.CovDHyper(x, y, deriv)
		require.InDelta(t, k.Cov(x, y), v, 1e-14)

		want := fd.Gradient(nil, func(p []float64) float64 {
			return SqExp{Amplitude: p[0], Length: p[1]}.Cov(x, y)
		}, []float64{h[0], h[1]}, &fd.Settings{Formula: fd.Central})
		require.InDelta(t, want[0], deriv[0], 1e-6)
		require.InDelta(t, want[1], deriv[1], 1e-6)
	}
}
