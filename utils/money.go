package utils

import (
	"fmt"
	"math"
)

// Amounts are handled as int64 cents everywhere; these helpers only
// exist at the display/input edges.

func RandsToCents(rands float64) int64 {
	return int64(math.Round(rands * 100))
}

func CentsToRands(cents int64) float64 {
	return float64(cents) / 100
}

func FormatRands(cents int64) string {
	return fmt.Sprintf("R%.2f", CentsToRands(cents))
}
