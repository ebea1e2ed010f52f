package utils

import "math"

// RoundEuro rounds a fare to the nearest whole euro.
func RoundEuro(amount float64) int {
	return int(math.Round(amount))
}
