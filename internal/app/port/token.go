package port

import (
	"context"

	"splits_checker/internal/domain/entity"
)

// TokenMetadataResolver fetches symbol/decimals for a set of ERC-20 tokens.
// Tokens whose metadata cannot be resolved are omitted from the result;
// only a whole-batch transport failure returns an error.
type TokenMetadataResolver interface {
	ResolveTokenMetadata(ctx context.Context, client ChainClient, tokenAddresses []string) (map[string]entity.TokenMetadata, error)
}

// TokenListProvider defines the interface for fetching tracked token lists.
type TokenListProvider interface {
	// GetTokensForNetwork returns the configured token list for a network.
	GetTokensForNetwork(netDef entity.NetworkDefinition) ([]entity.TokenInfo, error)
}
