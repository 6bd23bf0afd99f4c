package ecm

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// chooseBounds returns the stage1 and stage2 smoothness bounds for a modulus
// of the given bit length. The table was tuned together with the sampled
// stage2 and the curve-count schedule; the exact values are part of the
// contract.
func chooseBounds(bitLen int) (b1, b2 uint64) {
	switch {
	case bitLen <= 100:
		return 1000, 50000
	case bitLen <= 128:
		return 3000, 200000
	case bitLen <= 160:
		return 5000, 300000
	default:
		return 10000, 500000
	}
}

// EstimateB1 returns the customary heuristic stage1 bound for a target factor
// of the given bit size, exp(sqrt(ln(p) * ln(ln(p)))/2). It is exported as a
// tuning aid for callers building their own schedules; FindFactor sticks to
// the fixed table.
func EstimateB1(factorBits int) uint64 {

	if factorBits < 4 {
		return 2
	}

	ln2 := big.NewFloat(math.Ln2).SetPrec(128)

	// ln(p) = factorBits * ln(2)
	lnP := new(big.Float).SetPrec(128).SetInt64(int64(factorBits))
	lnP.Mul(lnP, ln2)

	lnLnP := bigfloat.Log(lnP)

	s := new(big.Float).Mul(lnP, lnLnP)
	s.Sqrt(s)
	s.Quo(s, big.NewFloat(2))

	b1, _ := bigfloat.Exp(s).Uint64()

	return b1
}
