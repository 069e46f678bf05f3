package service

import (
	"math/big"

	"splits_checker/internal/domain/entity"
	"splits_checker/internal/pkg/utils"
)

// MergeBalances combines partial balance mappings into one canonical
// mapping. Raw amounts are summed per token; symbol and decimals are taken
// from whichever input defines the token first; the formatted amount is
// recomputed from the summed raw amount. Inputs are never mutated and the
// result shares no big.Int values with them.
func MergeBalances(inputs ...entity.Balances) entity.Balances {
	merged := make(entity.Balances)

	for _, input := range inputs {
		for key, balance := range input {
			raw := big.NewInt(0)
			if balance.RawAmount != nil {
				raw = balance.RawAmount
			}

			existing, ok := merged[key]
			if !ok {
				existing = entity.TokenBalance{
					TokenAddress: key,
					Symbol:       balance.Symbol,
					Decimals:     balance.Decimals,
					RawAmount:    new(big.Int).Set(raw),
				}
			} else {
				existing.RawAmount = new(big.Int).Add(existing.RawAmount, raw)
			}

			// Raw amounts are non-negative by invariant, so formatting
			// cannot fail here.
			existing.FormattedAmount, _ = utils.FormatRawAmount(existing.RawAmount, existing.Decimals)
			merged[key] = existing
		}
	}

	return merged
}
