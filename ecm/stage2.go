package ecm

import (
	"math"
	"math/big"

	"github.com/tuneinsight/factorint/utils"
)

// stage2BatchSize is the number of accumulated correlation terms between two
// gcd tests of the accumulator.
const stage2BatchSize = 50

// Stage2 continues from a stage1 result: candidate scalars in (b1, b2] are
// applied to the point and the resulting X-coordinates are correlated
// Brent-Suyama style, so that a factor of some candidate difference or sum
// shows up in a batched gcd instead of requiring one full scalar
// multiplication per candidate prime. The candidate list is a heuristic
// sample, not a sieve; see stage2Candidates. Returns the first nontrivial
// factor found, or nil.
func Stage2(point Point, N, a *big.Int, b1, b2 uint64) *big.Int {

	if point.IsInfinity() {
		return nil
	}

	if f := checkFactorGCD(point.Z, N); f != nil {
		return f
	}

	accel := NewMontgomery(N)

	candidates := stage2Candidates(b1, b2)
	utils.SortSlice(candidates)

	aMont := accel.MForm(a)
	pMont := Point{
		X: accel.MForm(point.X),
		Y: accel.MForm(point.Y),
		Z: accel.MForm(point.Z),
	}

	// X-coordinates of p*P for every candidate p, kept in Montgomery form;
	// zero marks a point that degenerated to the identity.
	xCoords := make([]*big.Int, 0, len(candidates))
	for _, p := range candidates {

		q, factor := pointMultMontgomery(p, pMont, N, aMont, accel)
		if factor != nil {
			return factor
		}

		if q.IsInfinity() {
			xCoords = append(xCoords, new(big.Int))
		} else {
			xCoords = append(xCoords, q.X)
		}
	}

	one := new(big.Int).SetUint64(1)
	acc := new(big.Int).Set(one)
	var terms int

	// Each entry is correlated against a short forward window rather than
	// all pairs; the wider stride on long lists keeps the cost linear.
	stride := 1
	if len(xCoords) > 20 {
		stride = 5
	}

	for i := range xCoords {

		if xCoords[i].Sign() == 0 {
			continue
		}

		startJ := i + 1
		if startJ > len(xCoords)-1 {
			startJ = len(xCoords) - 1
		}

		endJ := len(xCoords)
		if i+3*stride < endJ {
			endJ = i + 3*stride
		}

		for j := startJ; j < endJ; j++ {

			if xCoords[j].Sign() == 0 {
				continue
			}

			diff := new(big.Int)
			if xCoords[i].Cmp(xCoords[j]) >= 0 {
				diff.Sub(xCoords[i], xCoords[j])
			} else {
				diff.Sub(xCoords[j], xCoords[i])
			}

			if diff.Sign() > 0 {
				acc.Mul(acc, diff)
				acc.Mod(acc, N)
				terms++

				if terms%stage2BatchSize == 0 {
					if f := checkFactorGCD(acc, N); f != nil {
						return f
					}
					acc.Set(one)
				}
			}

			sum := addMod(xCoords[i], xCoords[j], N)

			if sum.Sign() > 0 {
				acc.Mul(acc, sum)
				acc.Mod(acc, N)
				terms++

				if terms%stage2BatchSize == 0 {
					if f := checkFactorGCD(acc, N); f != nil {
						return f
					}
					acc.Set(one)
				}
			}
		}
	}

	if acc.Cmp(one) > 0 {
		if f := checkFactorGCD(acc, N); f != nil {
			return f
		}
	}

	// Fallback sweep over the individual coordinates.
	for _, x := range xCoords {
		if x.Sign() > 0 {
			if f := checkFactorGCD(x, N); f != nil {
				return f
			}
		}
	}

	return nil
}

// stage2Candidates lists the scalars tried in (b1, b2]: every odd integer for
// moderate ranges, and a strided subsample of roughly 500 values once the
// range gets large enough that walking all odds would dominate the attempt.
func stage2Candidates(b1, b2 uint64) []uint64 {

	if b2 <= b1 {
		return nil
	}

	r := b2 - b1

	var step uint64 = 1
	switch {
	case r > 500000:
		step = r / 500
	case r > 100000:
		step = r / 200
	}

	candidates := make([]uint64, 0, 512)

	p := b1 + 1
	if p%2 == 0 {
		p++
	}

	for p <= b2 {

		candidates = append(candidates, p)

		if p > math.MaxUint64-2 {
			break
		}
		p += 2

		if len(candidates) >= 500 && step > 1 {

			candidates = candidates[:0]

			for p = b1 + 1; p <= b2; {
				candidates = append(candidates, p)
				if p > math.MaxUint64-step {
					break
				}
				p += step
			}

			break
		}
	}

	return candidates
}
