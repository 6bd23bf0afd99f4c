package ecm

import (
	"math/big"
)

// Stage1 runs the first ECM stage on a fresh random curve: the starting point
// is multiplied by the product of all prime powers up to b1, with factor
// detection inline in the ladder. It returns the resulting point in plain
// form together with the curve coefficient a, so that stage2 can continue
// from the same point and curve; factor is nil when stage1 found nothing,
// which is the routine outcome.
func Stage1(N *big.Int, b1 uint64) (P Point, factor, a *big.Int) {
	curve, point := NewRandomWeierstrassCurve(N)
	return stage1(N, b1, curve, point)
}

// Stage1Seeded is Stage1 on the deterministic curve derived from (N, seed).
// Attempts are pure functions of their inputs, so distinct seeds are safe to
// dispatch to independent workers.
func Stage1Seeded(N *big.Int, b1 uint64, seed uint64) (P Point, factor, a *big.Int) {
	curve, point := NewSeededWeierstrassCurve(N, seed)
	return stage1(N, b1, curve, point)
}

// Stage1Precomputed is Stage1 on the attempt-th table curve for b1. The last
// return value is false when the table has no such entry; the caller then
// falls back to a random curve.
func Stage1Precomputed(N *big.Int, b1 uint64, attempt int) (P Point, factor, a *big.Int, ok bool) {

	curve, point, ok := CurveForAttempt(N, b1, attempt)
	if !ok {
		return
	}

	P, factor, a = stage1(N, b1, curve, point)

	return P, factor, a, true
}

func stage1(N *big.Int, b1 uint64, curve Weierstrass, point Point) (Point, *big.Int, *big.Int) {

	accel := NewMontgomery(N)

	// One conversion in, one conversion out: the whole ladder runs on
	// Montgomery-resident coordinates.
	aMont := accel.MForm(curve.A)
	pMont := Point{
		X: accel.MForm(point.X),
		Y: accel.MForm(point.Y),
		Z: accel.MForm(point.Z),
	}

	k := primeProduct(b1)

	resMont, factor := pointMultMontgomery(k, pMont, N, aMont, accel)

	res := Point{
		X: accel.InvMForm(resMont.X),
		Y: accel.InvMForm(resMont.Y),
		Z: accel.InvMForm(resMont.Z),
	}

	if factor != nil {
		return res, factor, curve.A
	}

	if f := checkFactorGCD(res.Z, N); f != nil {
		return res, f, curve.A
	}

	return res, nil, curve.A
}
