package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
	"splits_checker/internal/infrastructure/contracts"
	"splits_checker/internal/pkg/utils"
)

// metadataBatchSize caps how many tokens go into one JSON-RPC batch; two
// calls are issued per token, so a chunk of 100 tokens is 200 batch elements.
const metadataBatchSize = 100

// tokenMetadataResolver implements port.TokenMetadataResolver. It issues two
// batched read calls per token (symbol, decimals) and excludes any token for
// which either call fails or decodes to garbage. It keeps no cache of its
// own; see NewCachedMetadataResolver for the caching layer.
type tokenMetadataResolver struct {
	builder *CallBuilder
	logger  *zap.Logger
}

// NewTokenMetadataResolver creates a new resolver using the given call builder.
func NewTokenMetadataResolver(builder *CallBuilder, logger *zap.Logger) port.TokenMetadataResolver {
	return &tokenMetadataResolver{
		builder: builder,
		logger:  logger.Named("TokenMetadataResolver"),
	}
}

// ResolveTokenMetadata fetches symbol/decimals for the given tokens in one
// batch. Requesting the native sentinel is a precondition violation and
// fails before any I/O. Per-token failures silently exclude the token; only
// a whole-batch transport failure returns an error.
func (r *tokenMetadataResolver) ResolveTokenMetadata(ctx context.Context, client port.ChainClient, tokenAddresses []string) (map[string]entity.TokenMetadata, error) {
	metadata := make(map[string]entity.TokenMetadata, len(tokenAddresses))
	if len(tokenAddresses) == 0 {
		return metadata, nil
	}

	normalized := make([]string, 0, len(tokenAddresses))
	seen := make(map[string]struct{}, len(tokenAddresses))
	for _, token := range tokenAddresses {
		if entity.IsNativeToken(token) {
			return nil, entity.ErrNativeTokenMetadata
		}
		key := utils.NormalizeAddress(token)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, key)
	}

	for _, chunk := range utils.BatchStrings(normalized, metadataBatchSize) {
		calls, err := r.builder.BuildMetadataCalls(chunk)
		if err != nil {
			return nil, err
		}

		results, err := client.CallBatch(ctx, calls)
		if err != nil {
			return nil, fmt.Errorf("metadata batch call failed: %w", err)
		}
		if len(results) != len(calls) {
			return nil, fmt.Errorf("metadata batch returned %d results for %d calls", len(results), len(calls))
		}

		for i, token := range chunk {
			symbolRes := results[2*i]
			decimalsRes := results[2*i+1]
			if !symbolRes.OK || !decimalsRes.OK {
				r.logger.Debug("Token metadata unavailable, excluding token", zap.String("token", token))
				continue
			}

			symbol, err := contracts.UnpackString("symbol", symbolRes.ReturnData)
			if err != nil {
				r.logger.Debug("Failed to decode token symbol, excluding token", zap.String("token", token), zap.Error(err))
				continue
			}
			decimals, err := contracts.UnpackUint8("decimals", decimalsRes.ReturnData)
			if err != nil {
				r.logger.Debug("Failed to decode token decimals, excluding token", zap.String("token", token), zap.Error(err))
				continue
			}

			metadata[token] = entity.TokenMetadata{
				Address:  token,
				Symbol:   symbol,
				Decimals: decimals,
			}
		}
	}

	return metadata, nil
}
