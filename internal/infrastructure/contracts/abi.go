package contracts

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Minimal ABI fragments for every read call this service issues: ERC-20
// metadata and balances, the Multicall3 native-balance helper, the SplitMain
// v1 registry getters and the split v2 dual-balance getter. Method names are
// unique across the fragments, so one parsed ABI serves all of them.
const readABI = `[
{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"addr","type":"address"}],"name":"getEthBalance","outputs":[{"name":"balance","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"split","type":"address"}],"name":"getETHBalance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"split","type":"address"},{"name":"token","type":"address"}],"name":"getERC20Balance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"inputs":[{"name":"token","type":"address"}],"name":"getSplitBalance","outputs":[{"name":"splitBalance","type":"uint256"},{"name":"warehouseBalance","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

var (
	parsedReadABI abi.ABI
	parseOnce     sync.Once
)

func parsed() abi.ABI {
	parseOnce.Do(func() {
		var err error
		parsedReadABI, err = abi.JSON(strings.NewReader(readABI))
		if err != nil {
			// The ABI is a compile-time constant, failing to parse it is a bug.
			panic(fmt.Sprintf("failed to parse read ABI: %v", err))
		}
	})
	return parsedReadABI
}

// Pack returns the packed calldata for a named method of the read ABI.
func Pack(method string, args ...interface{}) ([]byte, error) {
	data, err := parsed().Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	return data, nil
}

// UnpackUint256 decodes a single uint256 return value of the named method.
func UnpackUint256(method string, data []byte) (*big.Int, error) {
	unpacked, err := parsed().Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	if len(unpacked) == 0 {
		return nil, fmt.Errorf("%s unpack returned no data", method)
	}
	value, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected %s result type %T", method, unpacked[0])
	}
	return value, nil
}

// UnpackString decodes a single string return value of the named method.
func UnpackString(method string, data []byte) (string, error) {
	unpacked, err := parsed().Unpack(method, data)
	if err != nil {
		return "", fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	if len(unpacked) == 0 {
		return "", fmt.Errorf("%s unpack returned no data", method)
	}
	value, ok := unpacked[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected %s result type %T", method, unpacked[0])
	}
	return value, nil
}

// UnpackUint8 decodes a single uint8 return value of the named method.
func UnpackUint8(method string, data []byte) (uint8, error) {
	unpacked, err := parsed().Unpack(method, data)
	if err != nil {
		return 0, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}
	if len(unpacked) == 0 {
		return 0, fmt.Errorf("%s unpack returned no data", method)
	}
	value, ok := unpacked[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected %s result type %T", method, unpacked[0])
	}
	return value, nil
}

// UnpackSplitBalance decodes the two-part getSplitBalance return value.
// Both components must be present; return data too short for two words is
// an error so the caller can treat the entry as undefined.
func UnpackSplitBalance(data []byte) (*big.Int, *big.Int, error) {
	if len(data) < 64 {
		return nil, nil, fmt.Errorf("getSplitBalance return data too short: %d bytes", len(data))
	}
	unpacked, err := parsed().Unpack("getSplitBalance", data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unpack getSplitBalance result: %w", err)
	}
	if len(unpacked) < 2 {
		return nil, nil, fmt.Errorf("getSplitBalance unpack returned %d values", len(unpacked))
	}
	splitBalance, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected splitBalance type %T", unpacked[0])
	}
	warehouseBalance, ok := unpacked[1].(*big.Int)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected warehouseBalance type %T", unpacked[1])
	}
	return splitBalance, warehouseBalance, nil
}

// Encode helpers for the concrete calls the builder issues.

// PackBalanceOf packs ERC-20 balanceOf(owner).
func PackBalanceOf(owner common.Address) ([]byte, error) {
	return Pack("balanceOf", owner)
}

// PackSymbol packs ERC-20 symbol().
func PackSymbol() ([]byte, error) {
	return Pack("symbol")
}

// PackDecimals packs ERC-20 decimals().
func PackDecimals() ([]byte, error) {
	return Pack("decimals")
}

// PackGetEthBalance packs Multicall3 getEthBalance(addr).
func PackGetEthBalance(addr common.Address) ([]byte, error) {
	return Pack("getEthBalance", addr)
}

// PackGetETHBalance packs SplitMain getETHBalance(split).
func PackGetETHBalance(split common.Address) ([]byte, error) {
	return Pack("getETHBalance", split)
}

// PackGetERC20Balance packs SplitMain getERC20Balance(split, token).
func PackGetERC20Balance(split, token common.Address) ([]byte, error) {
	return Pack("getERC20Balance", split, token)
}

// PackGetSplitBalance packs split v2 getSplitBalance(token).
func PackGetSplitBalance(token common.Address) ([]byte, error) {
	return Pack("getSplitBalance", token)
}
