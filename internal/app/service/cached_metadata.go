package service

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
	"splits_checker/internal/pkg/utils"
)

// cachedMetadataResolver decorates a TokenMetadataResolver with a TTL cache
// keyed by chain ID and token address. The underlying resolver stays
// cache-free; unresolvable tokens are not negatively cached so they can
// appear once deployed.
type cachedMetadataResolver struct {
	inner  port.TokenMetadataResolver
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewCachedMetadataResolver wraps a resolver with a go-cache TTL layer.
func NewCachedMetadataResolver(inner port.TokenMetadataResolver, ttl time.Duration, logger *zap.Logger) port.TokenMetadataResolver {
	return &cachedMetadataResolver{
		inner:  inner,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger.Named("CachedMetadataResolver"),
	}
}

func (r *cachedMetadataResolver) ResolveTokenMetadata(ctx context.Context, client port.ChainClient, tokenAddresses []string) (map[string]entity.TokenMetadata, error) {
	chainID := client.Definition().ChainID
	metadata := make(map[string]entity.TokenMetadata, len(tokenAddresses))
	misses := make([]string, 0, len(tokenAddresses))

	for _, token := range tokenAddresses {
		if entity.IsNativeToken(token) {
			return nil, entity.ErrNativeTokenMetadata
		}
		key := utils.NormalizeAddress(token)
		if cached, found := r.cache.Get(cacheKey(chainID, key)); found {
			metadata[key] = cached.(entity.TokenMetadata)
			continue
		}
		misses = append(misses, key)
	}

	if len(misses) == 0 {
		return metadata, nil
	}

	resolved, err := r.inner.ResolveTokenMetadata(ctx, client, misses)
	if err != nil {
		return nil, err
	}
	for key, meta := range resolved {
		metadata[key] = meta
		r.cache.SetDefault(cacheKey(chainID, key), meta)
	}

	r.logger.Debug("Resolved token metadata",
		zap.Int("requested", len(tokenAddresses)),
		zap.Int("cacheMisses", len(misses)),
		zap.Int("resolved", len(resolved)))
	return metadata, nil
}

func cacheKey(chainID uint64, tokenAddress string) string {
	return strconv.FormatUint(chainID, 10) + ":" + tokenAddress
}
