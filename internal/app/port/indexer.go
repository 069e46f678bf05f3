package port

import (
	"context"
	"math/big"

	"splits_checker/internal/domain/entity"
)

// IndexerClient defines the interface for an external balance indexer with
// cursor pagination.
type IndexerClient interface {
	// GetTokenBalances fetches one page of ERC-20 balances for an address.
	// An empty pageKey requests the first page.
	GetTokenBalances(ctx context.Context, address string, pageKey string) (*entity.TokenBalancePage, error)

	// GetNativeBalance fetches the address's native currency balance.
	GetNativeBalance(ctx context.Context, address string) (*big.Int, error)
}
