package utils

import (
	"github.com/ethereum/go-ethereum/common"

	"splits_checker/internal/domain/entity"
)

// NormalizeAddress returns the canonical EIP-55 checksummed form of an
// address. Any spelling of the native sentinel (including the empty string)
// maps to entity.NativeTokenAddress so that balance mappings use one key for
// the native currency.
func NormalizeAddress(address string) string {
	if entity.IsNativeToken(address) {
		return entity.NativeTokenAddress
	}
	return common.HexToAddress(address).Hex()
}
