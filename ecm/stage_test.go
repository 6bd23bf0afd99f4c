package ecm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// testSemiprime is 786433 * 2147483647, a 51-bit composite with a 20-bit
// prime factor.
func testSemiprime() *big.Int {
	return new(big.Int).Mul(
		new(big.Int).SetUint64(786433),
		new(big.Int).SetUint64(2147483647))
}

func requireFactorOrNil(t *testing.T, factor, N *big.Int) {
	t.Helper()
	if factor == nil {
		return
	}
	require.Equal(t, 1, factor.Cmp(new(big.Int).SetUint64(1)))
	require.Equal(t, -1, factor.Cmp(N))
	require.Equal(t, 0, new(big.Int).Mod(N, factor).Sign())
}

func TestStage1(t *testing.T) {

	N := testSemiprime()

	t.Run("Random", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			point, factor, a := Stage1(N, 1000)
			require.NotNil(t, a)
			require.NotNil(t, point.Z)
			requireFactorOrNil(t, factor, N)
		}
	})

	t.Run("SeededDeterministic", func(t *testing.T) {

		p1, f1, a1 := Stage1Seeded(N, 1000, 17)
		p2, f2, a2 := Stage1Seeded(N, 1000, 17)

		require.Equal(t, 0, a1.Cmp(a2))
		requirePointsEqual(t, p1, p2)

		if f1 == nil {
			require.Nil(t, f2)
		} else {
			require.NotNil(t, f2)
			require.Equal(t, 0, f1.Cmp(f2))
		}
	})

	t.Run("Precomputed", func(t *testing.T) {
		for attempt := 0; attempt < len(precomputedCurves[1000]); attempt++ {
			_, factor, a, ok := Stage1Precomputed(N, 1000, attempt)
			require.True(t, ok)
			require.NotNil(t, a)
			requireFactorOrNil(t, factor, N)
		}
	})

	t.Run("PrecomputedExhausted", func(t *testing.T) {
		_, _, _, ok := Stage1Precomputed(N, 1000, len(precomputedCurves[1000]))
		require.False(t, ok)
	})
}

func TestStage2(t *testing.T) {

	N := testSemiprime()
	a := new(big.Int).SetUint64(5)

	t.Run("Identity", func(t *testing.T) {
		require.Nil(t, Stage2(Infinity(), N, a, 1000, 50000))
	})

	t.Run("ImmediateGCD", func(t *testing.T) {

		// A point whose Z-coordinate already shares a factor with N is
		// resolved before any candidate multiplication.
		point := Point{
			X: new(big.Int).SetUint64(2),
			Y: new(big.Int).SetUint64(3),
			Z: new(big.Int).SetUint64(786433),
		}

		f := Stage2(point, N, a, 1000, 50000)
		require.NotNil(t, f)
		require.Equal(t, 0, f.Cmp(new(big.Int).SetUint64(786433)))
	})

	t.Run("EmptyRange", func(t *testing.T) {

		prime := new(big.Int).SetUint64(prime61)
		curve, point := NewSeededWeierstrassCurve(prime, 1)

		require.Nil(t, Stage2(point, prime, curve.A, 1000, 1000))
	})

	t.Run("FactorOrNil", func(t *testing.T) {

		point, factor, a := Stage1Seeded(N, 1000, 3)
		if factor == nil {
			factor = Stage2(point, N, a, 1000, 50000)
		}
		requireFactorOrNil(t, factor, N)
	})
}

func TestStage2Candidates(t *testing.T) {

	t.Run("EmptyWhenNotAbove", func(t *testing.T) {
		require.Empty(t, stage2Candidates(1000, 1000))
		require.Empty(t, stage2Candidates(1000, 500))
	})

	t.Run("OddWalk", func(t *testing.T) {

		c := stage2Candidates(1000, 50000)

		require.Equal(t, 24500, len(c))
		require.Equal(t, uint64(1001), c[0])
		require.Equal(t, uint64(49999), c[len(c)-1])

		for i, p := range c {
			require.Equal(t, uint64(1001+2*i), p)
		}
	})

	t.Run("StridedSample", func(t *testing.T) {

		for _, tc := range []struct {
			b1, b2      uint64
			count       int
			step        uint64
			first, last uint64
		}{
			{3000, 200000, 200, 985, 3001, 199016},
			{5000, 300000, 200, 1475, 5001, 298526},
			{10000, 500000, 200, 2450, 10001, 497551},
		} {
			c := stage2Candidates(tc.b1, tc.b2)

			require.Equal(t, tc.count, len(c), "b1=%d b2=%d", tc.b1, tc.b2)
			require.Equal(t, tc.first, c[0])
			require.Equal(t, tc.last, c[len(c)-1])

			for i := 1; i < len(c); i++ {
				require.Equal(t, tc.step, c[i]-c[i-1])
			}
		}
	})
}
