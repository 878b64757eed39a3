package common

import (
	"fmt"
	"strings"
)

// Balances are tracked in indivisible subunits. One display coin is 1e9
// subunits, so formatting never goes through floating point.
const SubunitsPerCoin = uint64(1e9)

func SubunitsToCoinString(subunits uint64) string {
	whole := subunits / SubunitsPerCoin
	frac := subunits % SubunitsPerCoin
	if frac == 0 {
		return fmt.Sprintf("%d", whole)
	}
	fracStr := strings.TrimRight(fmt.Sprintf("%09d", frac), "0")
	return fmt.Sprintf("%d.%s", whole, fracStr)
}
