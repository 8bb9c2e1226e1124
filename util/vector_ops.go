package util

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// sum the vector
func VectorSum(data []uint32) uint32 {
	sum := uint32(0)
	for _, d := range data {
		sum += d
	}
	return sum
}

// Normalize scales w in place so that it sums to one. A vector whose
// sum is not positive is left untouched and false is returned.
func Normalize(w []float64) bool {
	sum := floats.Sum(w)
	if !(sum > 0) || math.IsInf(sum, 0) {
		return false
	}
	floats.Scale(1/sum, w)
	return true
}

// NormalizeLog turns unnormalized log weights into probabilities in
// place, shifting by the log-sum-exp so that long products of small
// factors do not underflow.
func NormalizeLog(logw []float64) {
	if len(logw) == 0 {
		return
	}
	lse := floats.LogSumExp(logw)
	for i, v := range logw {
		logw[i] = math.Exp(v - lse)
	}
}

// ExpShift turns log weights into weights in place, scaled so that the
// largest one is exactly one. The relative weights are unchanged and a
// finite maximum can never underflow to an all-zero vector. NaN entries
// stay NaN.
func ExpShift(logw []float64) {
	if len(logw) == 0 {
		return
	}
	max := floats.Max(logw)
	for i, v := range logw {
		logw[i] = math.Exp(v - max)
	}
}
