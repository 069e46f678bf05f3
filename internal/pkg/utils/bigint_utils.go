package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatRawAmount converts a raw integer token amount into the exact decimal
// string of amount / 10^decimals.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
// The division is done on integers, so the rendering never loses precision;
// trailing zeros of the fractional part are trimmed.
func FormatRawAmount(amount *big.Int, decimals uint8) (string, error) {
	if amount == nil {
		return "0", nil
	}
	if amount.Sign() < 0 {
		return "", fmt.Errorf("negative raw amount %s", amount.String())
	}
	if decimals == 0 {
		return amount.String(), nil
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(amount, scale, new(big.Int))

	fracStr := frac.String()
	if pad := int(decimals) - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")

	if fracStr == "" {
		return whole.String(), nil
	}
	return whole.String() + "." + fracStr, nil
}
