package utils

import (
	"math"
	"math/rand"
)

// ********************************** SLICE MANIPULATION **********************************

// Random generates a random floating point number between a and b
func Random(a, b float64) float64 {
	return (b-a)*rand.Float64() + a
}

// FillNorm returns a slice of given length filled with values taken from the normal distrib
func FillNorm(length int, mean float64, std float64) []float64 {
	a := make([]float64, length)
	for i := range a {
		a[i] = rand.NormFloat64()*std + mean
	}
	return a
}

// WeightsInit returns initial weight values for a layer with the given number
// of inputs, uniform in (-1, 1) scaled by 1/sqrt(inputs)
func WeightsInit(length int, inputs float64) []float64 {
	a := make([]float64, length)
	for i := range a {
		a[i] = Random(-1, 1) / math.Sqrt(inputs)
	}
	return a
}

// Apply applies f to each value of slice a
func Apply(f func(float64) float64, a []float64) []float64 {
	c := make([]float64, len(a))
	for i := range c {
		c[i] = f(a[i])
	}
	return c
}

// Mean computes the arithmetic mean of a
func Mean(a []float64) float64 {
	c := 0.
	for i := range a {
		c = c + a[i]
	}
	return c / float64(len(a))
}

// Max returns the largest value of a
func Max(a []float64) float64 {
	max := a[0]
	for i := range a {
		if a[i] > max {
			max = a[i]
		}
	}
	return max
}

// Softmax computes the softmax of x, shifted by max(x) for numerical stability
func Softmax(x []float64) []float64 {
	max := Max(x)
	out := Apply(func(y float64) float64 { return math.Exp(y - max) }, x)
	var sum float64
	for _, v := range out {
		sum += v
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// ToApply makes a function float -> float into a function to apply to a matrix (int, int, float -> float)
func ToApply(f func(float64) float64) func(i, j int, v float64) float64 {
	return func(i, j int, v float64) float64 {
		return f(v)
	}
}
