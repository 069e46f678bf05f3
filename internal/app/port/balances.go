package port

import (
	"context"

	"splits_checker/internal/domain/entity"
)

// BalanceService defines the interface for fetching balance mappings for
// accounts and split contracts.
type BalanceService interface {
	// GetAccountBalances fetches balances of the given tokens held directly
	// by an account. The native sentinel may appear in the token list.
	GetAccountBalances(ctx context.Context, network string, account string, tokenAddresses []string) (entity.Balances, error)

	// GetSplitBalances fetches distributable balances of a split contract,
	// dispatching on the split version and filtering dust.
	GetSplitBalances(ctx context.Context, network string, split string, kind entity.BalanceSourceKind, tokenAddresses []string) (entity.Balances, error)

	// GetIndexedBalances fetches all balances the external indexer knows
	// for an account, following page cursors to completion.
	GetIndexedBalances(ctx context.Context, network string, account string) (entity.Balances, error)
}
