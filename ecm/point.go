package ecm

import (
	"math/big"
)

// Point is an elliptic curve point in projective coordinates (X:Y:Z).
// The point at infinity is encoded with Z = 0; all coordinates are kept
// reduced into [0, N).
type Point struct {
	X, Y, Z *big.Int
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{
		X: new(big.Int).SetUint64(1),
		Y: new(big.Int).SetUint64(1),
		Z: new(big.Int),
	}
}

// IsInfinity reports whether p is the point at infinity.
func (p Point) IsInfinity() bool {
	return p.Z.Sign() == 0
}

// CopyNew returns a deep copy of the point.
func (p Point) CopyNew() Point {
	return Point{
		X: new(big.Int).Set(p.X),
		Y: new(big.Int).Set(p.Y),
		Z: new(big.Int).Set(p.Z),
	}
}

// modSub returns a-b mod n without ever producing a negative residue:
// when the minuend is smaller than the subtrahend, n is added first.
func modSub(a, b, n *big.Int) (z *big.Int) {
	z = new(big.Int)
	if a.Cmp(b) >= 0 {
		z.Sub(a, b)
	} else {
		z.Add(a, n)
		z.Sub(z, b)
	}
	return z.Mod(z, n)
}

// mulMod returns a*b mod n.
func mulMod(a, b, n *big.Int) (z *big.Int) {
	z = new(big.Int).Mul(a, b)
	return z.Mod(z, n)
}

// addMod returns a+b mod n.
func addMod(a, b, n *big.Int) (z *big.Int) {
	z = new(big.Int).Add(a, b)
	return z.Mod(z, n)
}

// mulUintMod returns c*a mod n for a small constant c. Scaling by a plain
// constant preserves Montgomery form, so this is shared by both the plain and
// the Montgomery-resident formulas.
func mulUintMod(c uint64, a, n *big.Int) (z *big.Int) {
	z = new(big.Int).SetUint64(c)
	z.Mul(z, a)
	return z.Mod(z, n)
}

// pointDouble returns 2P on the curve y^2 = x^3 + ax + b mod n, using the
// Jacobian doubling formulas
//
//	M = 3*X^2 + a*Z^4, S = 4*X*Y^2
//	X' = M^2 - 2S, Y' = M*(S - X') - 8*Y^4, Z' = 2*Y*Z
//
// with every subtraction kept non-negative.
func pointDouble(p Point, n, a *big.Int) Point {

	if p.IsInfinity() {
		return Infinity()
	}

	xx := mulMod(p.X, p.X, n)
	yy := mulMod(p.Y, p.Y, n)
	zz := mulMod(p.Z, p.Z, n)
	z4 := mulMod(zz, zz, n)

	m := addMod(mulUintMod(3, xx, n), mulMod(a, z4, n), n)
	s := mulMod(mulUintMod(4, p.X, n), yy, n)

	x3 := modSub(mulMod(m, m, n), mulUintMod(2, s, n), n)

	y4 := mulMod(yy, yy, n)
	y3 := modSub(mulMod(m, modSub(s, x3, n), n), mulUintMod(8, y4, n), n)

	z3 := mulMod(mulUintMod(2, p.Y, n), p.Z, n)

	return Point{X: x3, Y: y3, Z: z3}
}

// pointDoubleMontgomery is pointDouble with every input, output and the curve
// coefficient a in Montgomery form. Products go through the accelerator;
// multiplications by the small formula constants stay plain since they
// preserve the Montgomery scaling.
func pointDoubleMontgomery(p Point, n, aMont *big.Int, accel *Montgomery) Point {

	if p.IsInfinity() {
		return Infinity()
	}

	xx := accel.MSq(p.X)
	yy := accel.MSq(p.Y)
	zz := accel.MSq(p.Z)
	z4 := accel.MSq(zz)

	m := addMod(mulUintMod(3, xx, n), accel.MRed(aMont, z4), n)
	s := accel.MRed(mulUintMod(4, p.X, n), yy)

	x3 := modSub(accel.MSq(m), mulUintMod(2, s, n), n)

	y4 := accel.MSq(yy)
	y3 := modSub(accel.MRed(m, modSub(s, x3, n)), mulUintMod(8, y4, n), n)

	z3 := accel.MRed(mulUintMod(2, p.Y, n), p.Z)

	return Point{X: x3, Y: y3, Z: z3}
}

// pointAdd returns P+Q on the curve y^2 = x^3 + ax + b mod n. The comparison
// terms U1 = X1*Z2^2, U2 = X2*Z1^2 (and the S1, S2 analogues) decide the
// degenerate cases: equal points delegate to doubling, inverse points return
// the point at infinity.
func pointAdd(p1, p2 Point, n, a *big.Int) Point {

	if p1.IsInfinity() {
		return p2.CopyNew()
	}
	if p2.IsInfinity() {
		return p1.CopyNew()
	}

	z1z1 := mulMod(p1.Z, p1.Z, n)
	z2z2 := mulMod(p2.Z, p2.Z, n)

	u1 := mulMod(p1.X, z2z2, n)
	u2 := mulMod(p2.X, z1z1, n)

	s1 := mulMod(p1.Y, mulMod(p2.Z, z2z2, n), n)
	s2 := mulMod(p2.Y, mulMod(p1.Z, z1z1, n), n)

	if u1.Cmp(u2) == 0 {
		if s1.Cmp(s2) == 0 {
			return pointDouble(p1, n, a)
		}
		return Infinity()
	}

	h := modSub(u2, u1, n)
	r := modSub(s2, s1, n)

	h2 := mulMod(h, h, n)
	h3 := mulMod(h2, h, n)
	v := mulMod(u1, h2, n)

	x3 := modSub(mulMod(r, r, n), addMod(h3, mulUintMod(2, v, n), n), n)
	y3 := modSub(mulMod(r, modSub(v, x3, n), n), mulMod(s1, h3, n), n)
	z3 := mulMod(mulMod(p1.Z, p2.Z, n), h, n)

	return Point{X: x3, Y: y3, Z: z3}
}

// pointAddMontgomery is pointAdd with every input, output and the curve
// coefficient a in Montgomery form.
func pointAddMontgomery(p1, p2 Point, n, aMont *big.Int, accel *Montgomery) Point {

	if p1.IsInfinity() {
		return p2.CopyNew()
	}
	if p2.IsInfinity() {
		return p1.CopyNew()
	}

	z1z1 := accel.MSq(p1.Z)
	z2z2 := accel.MSq(p2.Z)

	u1 := accel.MRed(p1.X, z2z2)
	u2 := accel.MRed(p2.X, z1z1)

	s1 := accel.MRed(p1.Y, accel.MRed(p2.Z, z2z2))
	s2 := accel.MRed(p2.Y, accel.MRed(p1.Z, z1z1))

	if u1.Cmp(u2) == 0 {
		if s1.Cmp(s2) == 0 {
			return pointDoubleMontgomery(p1, n, aMont, accel)
		}
		return Infinity()
	}

	h := modSub(u2, u1, n)
	r := modSub(s2, s1, n)

	h2 := accel.MSq(h)
	h3 := accel.MRed(h2, h)
	v := accel.MRed(u1, h2)

	x3 := modSub(accel.MSq(r), addMod(h3, mulUintMod(2, v, n), n), n)
	y3 := modSub(accel.MRed(r, modSub(v, x3, n)), accel.MRed(s1, h3), n)
	z3 := accel.MRed(accel.MRed(p1.Z, p2.Z), h)

	return Point{X: x3, Y: y3, Z: z3}
}
