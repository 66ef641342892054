// Package safemath - проверяемая 64-битная арифметика для денежных сумм.
// Переполнение никогда не насыщается молча: второй результат false.
package safemath

import "math/bits"

// Add - a + b с контролем переполнения
func Add(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// Sub - a - b с контролем ухода ниже нуля
func Sub(a, b uint64) (uint64, bool) {
	diff, borrow := bits.Sub64(a, b, 0)
	return diff, borrow == 0
}

// Mul - a * b с контролем переполнения
func Mul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// MulDiv - floor(a * b / d) со 128-битным промежуточным произведением.
// false, если d == 0 или частное не помещается в uint64.
func MulDiv(a, b, d uint64) (uint64, bool) {
	if d == 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		// частное не поместится в 64 бита
		return 0, false
	}
	q, _ := bits.Div64(hi, lo, d)
	return q, true
}
