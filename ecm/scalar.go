package ecm

import (
	"math/big"
)

// maxLadderIterations caps the double-and-add loop. A uint64 scalar has at
// most 64 bits, so the cap is never reached on well-formed inputs.
const maxLadderIterations = 65

// checkFactorGCD returns gcd(z, n) when it is a nontrivial factor of n, and
// nil otherwise. A prime factor p of n manifests as the Z-coordinate of a
// point acquiring a factor of p without being divisible by n, which is the
// event ECM is built around.
func checkFactorGCD(z, n *big.Int) *big.Int {

	if z.Sign() == 0 {
		return nil
	}

	g := new(big.Int).GCD(nil, nil, z, n)

	if g.Cmp(new(big.Int).SetUint64(1)) > 0 && g.Cmp(n) < 0 {
		return g
	}

	return nil
}

// pointMult returns k*P by the binary double-and-add method, bits of k taken
// least significant first. After every addition the Z-coordinate of the
// running result is tested with checkFactorGCD; a nontrivial gcd aborts the
// ladder and is returned as the found factor (nil otherwise).
func pointMult(k uint64, p Point, n, a *big.Int) (Point, *big.Int) {

	result := Infinity()
	addend := p.CopyNew()

	for it := 0; k > 0 && it < maxLadderIterations; it++ {

		if k&1 == 1 {
			result = pointAdd(result, addend, n, a)

			if f := checkFactorGCD(result.Z, n); f != nil {
				return result, f
			}
		}

		addend = pointDouble(addend, n, a)
		k >>= 1
	}

	return result, nil
}

// pointMultMontgomery is pointMult with the point and curve coefficient in
// Montgomery form. Factor detection on the Montgomery-scaled Z-coordinate is
// valid because R is a power of two and n is odd, so gcd(z*R mod n, n) equals
// gcd(z, n).
func pointMultMontgomery(k uint64, p Point, n, aMont *big.Int, accel *Montgomery) (Point, *big.Int) {

	result := Infinity()
	addend := p.CopyNew()

	for it := 0; k > 0 && it < maxLadderIterations; it++ {

		if k&1 == 1 {
			result = pointAddMontgomery(result, addend, n, aMont, accel)

			if f := checkFactorGCD(result.Z, n); f != nil {
				return result, f
			}
		}

		addend = pointDoubleMontgomery(addend, n, aMont, accel)
		k >>= 1
	}

	return result, nil
}
