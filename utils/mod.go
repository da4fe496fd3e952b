package utils

import "golang.org/x/exp/rand"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Normalize scales the positive entries of values to sum to 1, ignoring negatives.
// Falls back to uniform when nothing is positive.
func Normalize(values []float64) []float64 {
	normalized := make([]float64, len(values))
	sum := 0.0
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}
	if sum <= 0 {
		for i := range normalized {
			normalized[i] = 1.0 / float64(len(values))
		}
		return normalized
	}
	for i, v := range values {
		if v > 0 {
			normalized[i] = v / sum
		}
	}
	return normalized
}

// Sample draws an index from a probability vector.
func Sample(probabilities []float64, r *rand.Rand) int {
	sampled := r.Float64()
	cumulative := 0.0
	for i, p := range probabilities {
		cumulative += p
		if sampled < cumulative {
			return i
		}
	}
	for i := len(probabilities) - 1; i > 0; i-- { // Rounding errors
		if probabilities[i] > 0 {
			return i
		}
	}
	return 0
}
