package ecm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChooseBounds(t *testing.T) {

	for _, tc := range []struct {
		bitLen int
		b1, b2 uint64
	}{
		{50, 1000, 50000},
		{100, 1000, 50000},
		{101, 3000, 200000},
		{128, 3000, 200000},
		{129, 5000, 300000},
		{160, 5000, 300000},
		{161, 10000, 500000},
		{256, 10000, 500000},
	} {
		b1, b2 := chooseBounds(tc.bitLen)
		require.Equal(t, tc.b1, b1, "bitLen=%d", tc.bitLen)
		require.Equal(t, tc.b2, b2, "bitLen=%d", tc.bitLen)
	}
}

func TestEstimateB1(t *testing.T) {

	t.Run("TinyFactor", func(t *testing.T) {
		require.Equal(t, uint64(2), EstimateB1(0))
		require.Equal(t, uint64(2), EstimateB1(3))
	})

	t.Run("Plausible", func(t *testing.T) {
		// exp(sqrt(ln(p) ln(ln(p)))/2) for a 20-bit factor is about 20,
		// for a 64-bit factor about 650.
		b20 := EstimateB1(20)
		require.GreaterOrEqual(t, b20, uint64(15))
		require.LessOrEqual(t, b20, uint64(30))

		b64 := EstimateB1(64)
		require.GreaterOrEqual(t, b64, uint64(500))
		require.LessOrEqual(t, b64, uint64(800))
	})

	t.Run("Monotone", func(t *testing.T) {
		prev := EstimateB1(4)
		for bits := 8; bits <= 256; bits += 4 {
			cur := EstimateB1(bits)
			require.GreaterOrEqual(t, cur, prev, "bits=%d", bits)
			prev = cur
		}
	})
}
