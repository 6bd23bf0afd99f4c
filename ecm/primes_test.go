package ecm

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmallPrimesTable(t *testing.T) {

	require.Equal(t, 1229, len(smallPrimes))
	require.Equal(t, uint64(2), smallPrimes[0])
	require.Equal(t, uint64(9973), smallPrimes[len(smallPrimes)-1])

	for i := 1; i < len(smallPrimes); i++ {
		require.Greater(t, smallPrimes[i], smallPrimes[i-1])
	}
}

func TestPrimeProduct(t *testing.T) {

	t.Run("Exact", func(t *testing.T) {

		// Every prime power at most the bound contributes, e.g.
		// primeProduct(10) = (2*4*8) * (3*9) * 5 * 7 = 60480.
		for _, tc := range []struct {
			bound, want uint64
		}{
			{0, 1},
			{1, 1},
			{2, 2},
			{10, 60480},
			{20, 44696171520},
			{30, 20123333822592000},
		} {
			require.Equal(t, tc.want, primeProduct(tc.bound), "bound=%d", tc.bound)
		}
	})

	t.Run("Saturates", func(t *testing.T) {
		require.Equal(t, uint64(math.MaxUint64), primeProduct(50))
		require.Equal(t, uint64(math.MaxUint64), primeProduct(100))
		require.Equal(t, uint64(math.MaxUint64), primeProduct(1000))
		require.Equal(t, uint64(math.MaxUint64), primeProduct(10000))
	})
}

func TestSaturatingMul(t *testing.T) {
	require.Equal(t, uint64(6), saturatingMul(2, 3))
	require.Equal(t, uint64(math.MaxUint64), saturatingMul(math.MaxUint64, 2))
	require.Equal(t, uint64(0), saturatingMul(math.MaxUint64, 0))
	require.Equal(t, uint64(math.MaxUint64), saturatingMul(1<<32, 1<<32))
}

func TestIsProbablePrime(t *testing.T) {

	t.Run("SmallValues", func(t *testing.T) {
		for n, want := range map[uint64]bool{
			0: false, 1: false, 2: true, 3: true, 4: false,
			5: true, 9: false, 25: false, 97: true, 561: false,
		} {
			require.Equal(t, want, IsProbablePrime(new(big.Int).SetUint64(n)), "n=%d", n)
		}
	})

	t.Run("LargePrimes", func(t *testing.T) {
		require.True(t, IsProbablePrime(new(big.Int).SetUint64(prime61)))
		require.True(t, IsProbablePrime(new(big.Int).SetUint64(18446744073709551557))) // largest 64-bit prime

		p, ok := new(big.Int).SetString("18446744073709551629", 10)
		require.True(t, ok)
		require.True(t, IsProbablePrime(p))
	})

	t.Run("LargeComposites", func(t *testing.T) {

		semiprime := new(big.Int).Mul(
			new(big.Int).SetUint64(prime61),
			new(big.Int).SetUint64(1000000007))
		require.False(t, IsProbablePrime(semiprime))

		square := new(big.Int).SetUint64(prime61)
		square.Mul(square, square)
		require.False(t, IsProbablePrime(square))
	})

	t.Run("Exhaustive", func(t *testing.T) {

		if testing.Short() {
			t.Skip("skipping exhaustive primality comparison in short mode")
		}

		const limit = 1 << 20

		composite := make([]bool, limit)
		for i := 2; i*i < limit; i++ {
			if !composite[i] {
				for j := i * i; j < limit; j += i {
					composite[j] = true
				}
			}
		}

		n := new(big.Int)
		for i := uint64(2); i < limit; i++ {
			require.Equal(t, !composite[i], IsProbablePrime(n.SetUint64(i)), "n=%d", i)
		}
	})
}
