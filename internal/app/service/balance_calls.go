package service

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"splits_checker/internal/domain/entity"
	"splits_checker/internal/infrastructure/contracts"
)

// CallBuilder constructs the batched read descriptors for a balance fetch.
// The protocol addresses are injected once at construction instead of being
// hardcoded at call sites.
type CallBuilder struct {
	multicall common.Address
	splitMain common.Address
}

// NewCallBuilder creates a CallBuilder with the configured multicall helper
// and SplitMain registry addresses.
func NewCallBuilder(multicallAddress string, splitMainAddress string) *CallBuilder {
	return &CallBuilder{
		multicall: common.HexToAddress(multicallAddress),
		splitMain: common.HexToAddress(splitMainAddress),
	}
}

// BuildBalanceCalls produces one read call per token for the given holder
// and balance source. The result is index-aligned with tokenAddresses: the
// reducer relies on calls[i] answering for tokenAddresses[i].
func (b *CallBuilder) BuildBalanceCalls(kind entity.BalanceSourceKind, holder string, tokenAddresses []string) ([]entity.ContractCall, error) {
	holderAddr := common.HexToAddress(holder)
	calls := make([]entity.ContractCall, 0, len(tokenAddresses))

	for _, token := range tokenAddresses {
		var (
			to   common.Address
			data []byte
			err  error
		)

		switch {
		case entity.IsNativeToken(token):
			switch kind {
			case entity.AccountSource:
				to = b.multicall
				data, err = contracts.PackGetEthBalance(holderAddr)
			case entity.SplitV1Source:
				to = b.splitMain
				data, err = contracts.PackGetETHBalance(holderAddr)
			case entity.SplitV2Source:
				to = holderAddr
				data, err = contracts.PackGetSplitBalance(common.HexToAddress(entity.NativeTokenAddress))
			default:
				return nil, fmt.Errorf("unknown balance source kind %d", kind)
			}
		default:
			tokenAddr := common.HexToAddress(token)
			switch kind {
			case entity.AccountSource:
				to = tokenAddr
				data, err = contracts.PackBalanceOf(holderAddr)
			case entity.SplitV1Source:
				to = b.splitMain
				data, err = contracts.PackGetERC20Balance(holderAddr, tokenAddr)
			case entity.SplitV2Source:
				to = holderAddr
				data, err = contracts.PackGetSplitBalance(tokenAddr)
			default:
				return nil, fmt.Errorf("unknown balance source kind %d", kind)
			}
		}

		if err != nil {
			return nil, fmt.Errorf("failed to build balance call for token %s: %w", token, err)
		}
		calls = append(calls, entity.ContractCall{To: to, Data: data})
	}

	return calls, nil
}

// BuildMetadataCalls produces the symbol and decimals read calls for a set
// of ERC-20 tokens, two per token: calls[2*i] is symbol() and calls[2*i+1]
// is decimals() for tokenAddresses[i].
func (b *CallBuilder) BuildMetadataCalls(tokenAddresses []string) ([]entity.ContractCall, error) {
	calls := make([]entity.ContractCall, 0, len(tokenAddresses)*2)

	for _, token := range tokenAddresses {
		if entity.IsNativeToken(token) {
			return nil, entity.ErrNativeTokenMetadata
		}
		tokenAddr := common.HexToAddress(token)

		symbolData, err := contracts.PackSymbol()
		if err != nil {
			return nil, fmt.Errorf("failed to build symbol call for token %s: %w", token, err)
		}
		decimalsData, err := contracts.PackDecimals()
		if err != nil {
			return nil, fmt.Errorf("failed to build decimals call for token %s: %w", token, err)
		}

		calls = append(calls,
			entity.ContractCall{To: tokenAddr, Data: symbolData},
			entity.ContractCall{To: tokenAddr, Data: decimalsData},
		)
	}

	return calls, nil
}
