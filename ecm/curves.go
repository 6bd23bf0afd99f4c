package ecm

import (
	"encoding/binary"
	"math/big"

	"github.com/tuneinsight/factorint/utils"
	"github.com/tuneinsight/factorint/utils/sampling"
	"github.com/zeebo/blake3"
)

// Weierstrass is an elliptic curve y^2 = x^3 + ax + b mod N.
// B is derived so that the starting point lies on the curve; the projective
// point arithmetic only ever consumes A.
type Weierstrass struct {
	A, B, N *big.Int
}

// NewRandomWeierstrassCurve generates a random Weierstrass curve modulo N
// along with a point that lies on the curve. Each of x, y and a is sampled
// from 64 bits of randomness and reduced mod N, whatever the size of N; the
// capped sampling space is a deliberate trade, not a limitation to lift.
func NewRandomWeierstrassCurve(N *big.Int) (Weierstrass, Point) {
	return newWeierstrassCurve(N, sampling.RandUint64(), sampling.RandUint64(), sampling.RandUint64())
}

// NewSeededWeierstrassCurve is the deterministic variant of
// NewRandomWeierstrassCurve: the samples are drawn from a keyed PRNG whose
// key is derived from (N, seed), so the same inputs always yield the same
// curve and point.
func NewSeededWeierstrassCurve(N *big.Int, seed uint64) (Weierstrass, Point) {

	prng, err := sampling.NewKeyedPRNG(curveKey(N, seed))
	if err != nil {
		panic(err)
	}

	return newWeierstrassCurve(N, readUint64(prng), readUint64(prng), readUint64(prng))
}

// curveKey derives a 32-byte PRNG key from the modulus and a seed.
func curveKey(N *big.Int, seed uint64) []byte {

	h := blake3.New()
	h.Write(N.Bytes())

	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, seed)
	h.Write(b)

	return h.Sum(nil)[:32]
}

func readUint64(prng sampling.PRNG) uint64 {
	b := make([]byte, 8)
	if _, err := prng.Read(b); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b)
}

// newWeierstrassCurve builds the curve through (x, y) with coefficient a,
// deducing b = y^2 - x^3 - a*x mod N with non-negative subtractions, and
// returns the projective starting point (x : y : 1).
func newWeierstrassCurve(N *big.Int, xRand, yRand, aRand uint64) (Weierstrass, Point) {

	x := new(big.Int).SetUint64(xRand)
	x.Mod(x, N)

	y := new(big.Int).SetUint64(yRand)
	y.Mod(y, N)

	a := new(big.Int).SetUint64(aRand)
	a.Mod(a, N)

	x3 := mulMod(mulMod(x, x, N), x, N)
	ax := mulMod(a, x, N)
	y2 := mulMod(y, y, N)

	b := modSub(modSub(y2, x3, N), ax, N)

	curve := Weierstrass{A: a, B: b, N: new(big.Int).Set(N)}
	point := Point{X: x, Y: y, Z: new(big.Int).SetUint64(1)}

	return curve, point
}

// curveEntry is a starting curve kept from runs where it repeatedly produced
// factors for its stage1 bound. The b coefficient is rederived modulo the
// modulus under attack.
type curveEntry struct {
	a, x, y uint64
}

// precomputedCurves maps a stage1 bound to the curves worth trying before
// falling back to random generation.
var precomputedCurves = map[uint64][]curveEntry{
	1000: {
		{a: 5, x: 2, y: 3},
		{a: 11, x: 3, y: 5},
		{a: 17, x: 2, y: 7},
		{a: 29, x: 5, y: 2},
		{a: 37, x: 7, y: 3},
		{a: 101, x: 2, y: 9},
		{a: 271, x: 3, y: 11},
		{a: 1009, x: 11, y: 13},
	},
	3000: {
		{a: 7, x: 2, y: 5},
		{a: 19, x: 3, y: 7},
		{a: 43, x: 5, y: 11},
		{a: 127, x: 2, y: 13},
		{a: 571, x: 7, y: 17},
		{a: 1861, x: 3, y: 19},
	},
	5000: {
		{a: 13, x: 2, y: 11},
		{a: 61, x: 5, y: 7},
		{a: 197, x: 3, y: 13},
		{a: 883, x: 7, y: 19},
		{a: 2593, x: 11, y: 23},
		{a: 4253, x: 13, y: 29},
	},
	10000: {
		{a: 23, x: 2, y: 17},
		{a: 89, x: 3, y: 23},
		{a: 433, x: 5, y: 29},
		{a: 1579, x: 7, y: 31},
		{a: 6121, x: 11, y: 37},
		{a: 9973, x: 13, y: 41},
	},
}

// PrecomputedBounds returns the stage1 bounds for which a curve table exists,
// in ascending order.
func PrecomputedBounds() []uint64 {
	return utils.GetSortedKeys(precomputedCurves)
}

// CurveForAttempt returns the attempt-th precomputed curve for the given
// stage1 bound, reduced modulo N. The third return value is false when the
// table has no entry for (b1, attempt), in which case callers fall back to
// random generation.
func CurveForAttempt(N *big.Int, b1 uint64, attempt int) (Weierstrass, Point, bool) {

	entries, ok := precomputedCurves[b1]
	if !ok || attempt >= len(entries) {
		return Weierstrass{}, Point{}, false
	}

	e := entries[attempt]
	curve, point := newWeierstrassCurve(N, e.x, e.y, e.a)

	return curve, point, true
}
