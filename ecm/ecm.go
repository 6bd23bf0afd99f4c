// Package ecm implements Lenstra's Elliptic Curve Method for finding
// medium-sized nontrivial factors of large composite integers. It is the
// stage of a factorization pipeline that catches the 8-16 digit factors
// trial division and Pollard's Rho miss: random curves modulo N are walked
// through a two-stage scalar-multiplication search, and a prime factor of N
// reveals itself as a nontrivial gcd between a point's Z-coordinate and N.
package ecm

import (
	"math/big"
	"time"

	"github.com/montanaflynn/stats"
)

// minModulusBits is the smallest modulus size FindFactor accepts; anything
// smaller belongs to trial division or Pollard's Rho.
const minModulusBits = 50

// Report aggregates the per-attempt wall-clock timings of a FindFactor run.
type Report struct {
	// Curves is the number of curve attempts that ran.
	Curves int
	// AttemptMS holds the duration of each attempt in milliseconds.
	AttemptMS []float64
}

// Mean returns the mean attempt duration in milliseconds.
func (r Report) Mean() float64 {
	m, _ := stats.Mean(r.AttemptMS)
	return m
}

// Median returns the median attempt duration in milliseconds.
func (r Report) Median() float64 {
	m, _ := stats.Median(r.AttemptMS)
	return m
}

// StdDev returns the standard deviation of the attempt durations in
// milliseconds.
func (r Report) StdDev() float64 {
	m, _ := stats.StandardDeviation(r.AttemptMS)
	return m
}

// FindFactor searches for a nontrivial factor of N with ECM, running batches
// of curve attempts until one succeeds or the timeout elapses. It returns nil
// when N is too small, even or probably prime, and otherwise nil or a factor
// f with 1 < f < N. A nil result is a routine outcome, not a failure: the
// caller simply moves on to another method.
func FindFactor(N *big.Int, timeoutMS uint64) *big.Int {
	f, _ := FindFactorWithReport(N, timeoutMS)
	return f
}

// FindFactorWithReport is FindFactor plus the timing report of the run.
//
// The timeout is cooperative: it is checked between batches of curve
// attempts, so the worst-case overshoot is the cost of one batch. A zero
// timeout returns before any curve runs.
func FindFactorWithReport(N *big.Int, timeoutMS uint64) (*big.Int, Report) {

	var report Report

	// Montgomery arithmetic needs an odd modulus, and small or prime inputs
	// are not ECM's job; all guards run before any accelerator is built.
	if N.BitLen() < minModulusBits || N.Bit(0) == 0 {
		return nil, report
	}

	if IsProbablePrime(N) {
		return nil, report
	}

	start := time.Now()

	b1, b2 := chooseBounds(N.BitLen())

	for _, numCurves := range curveSchedule(N.BitLen()) {

		if uint64(time.Since(start).Milliseconds()) >= timeoutMS {
			break
		}

		if f := runCurves(N, b1, b2, numCurves, &report); f != nil {
			return f, report
		}
	}

	return nil, report
}

// curveSchedule returns the successive batch sizes for a modulus of the
// given bit length. Larger moduli hide larger factors and warrant more
// curves per batch.
func curveSchedule(bitLen int) []int {
	switch {
	case bitLen > 150:
		return []int{16, 32, 64, 128}
	case bitLen > 128:
		return []int{16, 32, 64}
	default:
		return []int{8, 16, 32, 64}
	}
}

// runCurves runs numCurves attempts, each one preferring a precomputed curve
// and falling back to a random one, with stage2 continuing from stage1's
// point whenever stage1 itself found nothing.
func runCurves(N *big.Int, b1, b2 uint64, numCurves int, report *Report) *big.Int {

	for attempt := 0; attempt < numCurves; attempt++ {

		t := time.Now()

		point, factor, a, ok := Stage1Precomputed(N, b1, attempt)
		if !ok {
			point, factor, a = Stage1(N, b1)
		}

		if factor == nil {
			factor = Stage2(point, N, a, b1, b2)
		}

		report.Curves++
		report.AttemptMS = append(report.AttemptMS, float64(time.Since(t).Microseconds())/1000)

		if factor != nil {
			return factor
		}
	}

	return nil
}
