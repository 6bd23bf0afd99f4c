package ecm

import (
	"math/big"
)

// Montgomery accelerates repeated modular multiplication against a fixed odd
// modulus. Values are carried in Montgomery form x*R mod N with R = 2^(64k)
// and k the number of 64-bit words of N, so that chains of MRed/MSq calls
// never divide; conversion back happens once, at the end of a chain.
type Montgomery struct {
	n      *big.Int
	shift  uint     // 64*k
	r2     *big.Int // R^2 mod n, for conversion into Montgomery form
	nPrime *big.Int // -n^-1 mod R
	mask   *big.Int // R-1
}

// NewMontgomery returns an accelerator for the odd modulus n.
func NewMontgomery(n *big.Int) *Montgomery {

	if n.Bit(0) == 0 {
		panic("cannot NewMontgomery: modulus must be odd")
	}

	k := (n.BitLen() + 63) / 64
	shift := uint(64 * k)

	one := new(big.Int).SetUint64(1)
	r := new(big.Int).Lsh(one, shift)

	r2 := new(big.Int).Mul(r, r)
	r2.Mod(r2, n)

	return &Montgomery{
		n:      new(big.Int).Set(n),
		shift:  shift,
		r2:     r2,
		nPrime: negModInverse(n, r, shift),
		mask:   new(big.Int).Sub(r, one),
	}
}

// MForm returns x*R mod n, the Montgomery form of x.
// The input must already be reduced into [0, n).
func (m *Montgomery) MForm(x *big.Int) *big.Int {
	return m.reduce(new(big.Int).Mul(x, m.r2))
}

// InvMForm returns x*(1/R) mod n, mapping a Montgomery-form value back to its
// plain representative.
func (m *Montgomery) InvMForm(x *big.Int) *big.Int {
	return m.reduce(new(big.Int).Set(x))
}

// MRed returns x*y*(1/R) mod n. For x and y in Montgomery form the result is
// the Montgomery form of their product.
func (m *Montgomery) MRed(x, y *big.Int) *big.Int {
	return m.reduce(new(big.Int).Mul(x, y))
}

// MSq returns x*x*(1/R) mod n.
func (m *Montgomery) MSq(x *big.Int) *big.Int {
	return m.reduce(new(big.Int).Mul(x, x))
}

// reduce performs the Montgomery reduction t*(1/R) mod n. The input t must be
// below n*R and is consumed.
func (m *Montgomery) reduce(t *big.Int) *big.Int {

	// u = ((t mod R) * n') mod R
	u := new(big.Int).And(t, m.mask)
	u.Mul(u, m.nPrime)
	u.And(u, m.mask)

	// t = (t + u*n) / R
	u.Mul(u, m.n)
	t.Add(t, u)
	t.Rsh(t, m.shift)

	if t.Cmp(m.n) >= 0 {
		t.Sub(t, m.n)
	}

	return t
}

// negModInverse returns -n^-1 mod R for odd n, by Hensel lifting: starting
// from the inverse mod 2, each Newton step x <- x*(2 - n*x) doubles the number
// of correct low-order bits.
func negModInverse(n, r *big.Int, shift uint) *big.Int {

	two := new(big.Int).SetUint64(2)

	nInv := new(big.Int).SetUint64(1)
	rMod := new(big.Int).SetUint64(2)

	tmp := new(big.Int)

	for rMod.BitLen() <= int(shift) {

		rMod.Mul(rMod, rMod)

		tmp.Mul(n, nInv)
		tmp.Mod(tmp, rMod)
		tmp.Sub(two, tmp)
		tmp.Mod(tmp, rMod)

		nInv.Mul(nInv, tmp)
		nInv.Mod(nInv, rMod)
	}

	nInv.Mod(nInv, r)

	if nInv.Sign() == 0 {
		return nInv
	}

	return nInv.Sub(r, nInv)
}
