package utils

import (
	"math"
	"strconv"
	"strings"
)

// Finite troca NaN e ±Inf por zero
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseFloat aceita números vindos como string nas APIs; valores inválidos viram zero
func ParseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return Finite(f)
}

// ParseInt aceita inteiros ou decimais em string ("12", "12.0")
func ParseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return int64(ParseFloat(s))
}
