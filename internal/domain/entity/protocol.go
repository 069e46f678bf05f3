package entity

import (
	"errors"
	"strings"
)

const (
	// NativeTokenAddress is the sentinel identifier for the chain's native
	// currency in token lists and balance mappings.
	NativeTokenAddress = "0x0000000000000000000000000000000000000000"

	// Multicall3Address is the canonical deployment of the multicall helper
	// used for native-balance reads on plain accounts.
	Multicall3Address = "0xcA11bde05977b3631167028862bE2a173976CA11"

	// SplitMainAddress is the v1 splits registry holding per-split balances.
	SplitMainAddress = "0x2ed6c4B5dA6378c7897AC67Ba9e43102Feb694EE"

	// DefaultNativeSymbol and DefaultNativeDecimals apply when the network
	// definition does not register a native currency.
	DefaultNativeSymbol   = "ETH"
	DefaultNativeDecimals = 18

	// DefaultDustThreshold is the raw amount at or below which split
	// balances are filtered out. Splits intentionally leave this residue
	// unswept for gas efficiency.
	DefaultDustThreshold = 2

	// DefaultMaxRetries bounds attempts for retryable external calls.
	DefaultMaxRetries = 3

	// DefaultMaxIndexerPages bounds cursor-following against an indexer
	// that never terminates its page chain.
	DefaultMaxIndexerPages = 50
)

var (
	// ErrNativeTokenMetadata is returned when token metadata is requested
	// for the native sentinel, which has no ERC-20 metadata to read.
	ErrNativeTokenMetadata = errors.New("token metadata requested for the native token sentinel")

	// ErrIndexerNotConfigured is returned when an indexer-backed operation
	// is invoked but no indexer endpoint is configured for the network.
	ErrIndexerNotConfigured = errors.New("no indexer endpoint configured")

	// ErrNetworkNotConfigured is returned when a request names a network
	// absent from the configured network list.
	ErrNetworkNotConfigured = errors.New("network is not configured")

	// ErrPageLimitExceeded is returned when the indexer keeps producing
	// page cursors past the configured cap.
	ErrPageLimitExceeded = errors.New("indexer page limit exceeded")
)

// IsNativeToken reports whether the identifier denotes the native currency.
// Comparison is case-insensitive; an empty identifier also counts as native.
func IsNativeToken(address string) bool {
	return address == "" || strings.EqualFold(address, NativeTokenAddress)
}
