package entity

import (
	"encoding/json"
	"math/big"
)

// TokenBalance represents the balance of a single token, both as the raw
// wire-level integer and as its exact decimal-string rendering.
type TokenBalance struct {
	TokenAddress    string   `json:"tokenAddress"`
	Symbol          string   `json:"symbol"`
	Decimals        uint8    `json:"decimals"`
	RawAmount       *big.Int `json:"rawAmount"`
	FormattedAmount string   `json:"formattedAmount"`
}

// MarshalJSON renders RawAmount as a decimal string; raw amounts routinely
// exceed the integer range JSON consumers handle as numbers.
func (b TokenBalance) MarshalJSON() ([]byte, error) {
	raw := "0"
	if b.RawAmount != nil {
		raw = b.RawAmount.String()
	}
	return json.Marshal(struct {
		TokenAddress    string `json:"tokenAddress"`
		Symbol          string `json:"symbol"`
		Decimals        uint8  `json:"decimals"`
		RawAmount       string `json:"rawAmount"`
		FormattedAmount string `json:"formattedAmount"`
	}{
		TokenAddress:    b.TokenAddress,
		Symbol:          b.Symbol,
		Decimals:        b.Decimals,
		RawAmount:       raw,
		FormattedAmount: b.FormattedAmount,
	})
}

// Balances maps a canonical (checksummed) token address to its balance entry.
// The native currency is keyed by NativeTokenAddress.
type Balances map[string]TokenBalance
