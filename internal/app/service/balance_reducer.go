package service

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"splits_checker/internal/domain/entity"
	"splits_checker/internal/infrastructure/contracts"
	"splits_checker/internal/pkg/utils"
)

// BalanceReducer maps batched call results back onto the token list they
// were built from, applying per-source normalization: native-token
// defaulting, split v2 two-part summation, and dust filtering.
type BalanceReducer struct {
	dustThreshold *big.Int
	logger        *zap.Logger
}

// NewBalanceReducer creates a reducer with the configured dust threshold.
func NewBalanceReducer(dustThresholdWei int64, logger *zap.Logger) *BalanceReducer {
	return &BalanceReducer{
		dustThreshold: big.NewInt(dustThresholdWei),
		logger:        logger.Named("BalanceReducer"),
	}
}

// Reduce produces a balance mapping from index-aligned call results.
// results[i] must answer for tokenAddresses[i]; a length mismatch means the
// ordering contract with the batch reader is broken and is an error.
// Undefined results, tokens without metadata, and split dust are skipped.
func (r *BalanceReducer) Reduce(
	netDef entity.NetworkDefinition,
	kind entity.BalanceSourceKind,
	tokenAddresses []string,
	metadata map[string]entity.TokenMetadata,
	results []entity.CallResult,
) (entity.Balances, error) {
	if len(results) != len(tokenAddresses) {
		return nil, fmt.Errorf("batch returned %d results for %d tokens", len(results), len(tokenAddresses))
	}

	balances := make(entity.Balances, len(tokenAddresses))

	for i, token := range tokenAddresses {
		result := results[i]
		if !result.OK {
			continue
		}

		isNative := entity.IsNativeToken(token)
		key := utils.NormalizeAddress(token)

		var (
			amount   *big.Int
			symbol   string
			decimals uint8
		)

		if kind == entity.SplitV2Source {
			splitBalance, warehouseBalance, err := contracts.UnpackSplitBalance(result.ReturnData)
			if err != nil {
				// Cannot safely assume a missing component is zero.
				r.logger.Debug("Skipping undecodable split balance", zap.String("token", key), zap.Error(err))
				continue
			}
			amount = new(big.Int).Add(splitBalance, warehouseBalance)
		} else {
			method := balanceMethod(kind, isNative)
			value, err := contracts.UnpackUint256(method, result.ReturnData)
			if err != nil {
				r.logger.Debug("Skipping undecodable balance", zap.String("token", key), zap.Error(err))
				continue
			}
			amount = value
		}

		if isNative {
			// Native balances never consult token metadata.
			symbol = netDef.NativeSymbol
			if symbol == "" {
				symbol = entity.DefaultNativeSymbol
			}
			decimals = netDef.NativeDecimals
			if decimals == 0 {
				decimals = entity.DefaultNativeDecimals
			}
		} else {
			meta, ok := metadata[key]
			if !ok {
				// Not a valid fungible token at this time; silently excluded.
				continue
			}
			symbol = meta.Symbol
			decimals = meta.Decimals
		}

		if kind.IsSplit() && amount.Cmp(r.dustThreshold) <= 0 {
			// Residue intentionally left in splits for gas efficiency.
			continue
		}

		formatted, err := utils.FormatRawAmount(amount, decimals)
		if err != nil {
			r.logger.Warn("Failed to format balance, skipping entry", zap.String("token", key), zap.Error(err))
			continue
		}

		balances[key] = entity.TokenBalance{
			TokenAddress:    key,
			Symbol:          symbol,
			Decimals:        decimals,
			RawAmount:       amount,
			FormattedAmount: formatted,
		}
	}

	return balances, nil
}

// balanceMethod names the single-uint256 getter whose return data is being
// decoded for the given source and token kind.
func balanceMethod(kind entity.BalanceSourceKind, isNative bool) string {
	switch kind {
	case entity.SplitV1Source:
		if isNative {
			return "getETHBalance"
		}
		return "getERC20Balance"
	default:
		if isNative {
			return "getEthBalance"
		}
		return "balanceOf"
	}
}
