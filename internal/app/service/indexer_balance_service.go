package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
	"splits_checker/internal/pkg/retry"
	"splits_checker/internal/pkg/utils"
)

// IndexerBalanceService drives the cursor-paginated external balance API.
// The native balance is fetched once, concurrently with the first token
// page; subsequent pages are strictly sequential, each page's token set
// resolved through the metadata resolver before the next page is requested.
type IndexerBalanceService struct {
	indexer    port.IndexerClient
	resolver   port.TokenMetadataResolver
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	maxPages   int
	logger     *zap.Logger
}

// NewIndexerBalanceService creates the paginated fetcher.
func NewIndexerBalanceService(
	indexer port.IndexerClient,
	resolver port.TokenMetadataResolver,
	maxRetries int,
	retryDelay time.Duration,
	maxPages int,
	rateLimit int,
	burstLimit int,
	logger *zap.Logger,
) *IndexerBalanceService {
	return &IndexerBalanceService{
		indexer:    indexer,
		resolver:   resolver,
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), burstLimit),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		maxPages:   maxPages,
		logger:     logger.Named("IndexerBalanceService"),
	}
}

// FetchAllBalances follows the indexer's page cursors until the chain
// terminates, merging every page (and the one-time native balance) into a
// single mapping. A cursor chain longer than the configured page cap is a
// transport failure. Each indexer call is retried with exponential backoff
// up to the attempt ceiling.
func (s *IndexerBalanceService) FetchAllBalances(ctx context.Context, client port.ChainClient, account string) (entity.Balances, error) {
	netDef := client.Definition()
	balances := make(entity.Balances)

	pageKey := ""
	for page := 0; ; page++ {
		if page >= s.maxPages {
			return nil, fmt.Errorf("account %s on %s: %w", account, netDef.Name, entity.ErrPageLimitExceeded)
		}

		var (
			nativeAmount *big.Int
			tokenPage    *entity.TokenBalancePage
		)

		eg, egCtx := errgroup.WithContext(ctx)
		if page == 0 {
			eg.Go(func() error {
				return retry.Do(egCtx, s.maxRetries, s.retryDelay, func(ctx context.Context) error {
					amount, err := s.indexer.GetNativeBalance(ctx, account)
					if err != nil {
						return err
					}
					nativeAmount = amount
					return nil
				})
			})
		}
		currentPageKey := pageKey
		eg.Go(func() error {
			if err := s.limiter.Wait(egCtx); err != nil {
				return err
			}
			return retry.Do(egCtx, s.maxRetries, s.retryDelay, func(ctx context.Context) error {
				fetched, err := s.indexer.GetTokenBalances(ctx, account, currentPageKey)
				if err != nil {
					return err
				}
				tokenPage = fetched
				return nil
			})
		})
		if err := eg.Wait(); err != nil {
			return nil, fmt.Errorf("indexer fetch failed for %s on %s: %w", account, netDef.Name, err)
		}

		pageBalances, err := s.reducePage(ctx, client, netDef, tokenPage)
		if err != nil {
			return nil, err
		}
		if page == 0 && nativeAmount != nil {
			pageBalances = MergeBalances(pageBalances, nativeEntry(netDef, nativeAmount))
		}
		balances = MergeBalances(balances, pageBalances)

		s.logger.Debug("Merged indexer page",
			zap.String("account", account),
			zap.Int("page", page),
			zap.Int("pageEntries", len(pageBalances)),
			zap.Int("totalEntries", len(balances)))

		pageKey = tokenPage.PageKey
		if pageKey == "" {
			break
		}
	}

	return balances, nil
}

// reducePage resolves metadata for one page's tokens and converts the rows
// into a balance mapping. Rows with an undefined amount or unresolvable
// metadata are excluded.
func (s *IndexerBalanceService) reducePage(ctx context.Context, client port.ChainClient, netDef entity.NetworkDefinition, page *entity.TokenBalancePage) (entity.Balances, error) {
	tokens := make([]string, 0, len(page.Balances))
	for _, row := range page.Balances {
		if row.TokenBalance == nil || entity.IsNativeToken(row.ContractAddress) {
			continue
		}
		tokens = append(tokens, row.ContractAddress)
	}

	metadata, err := s.resolver.ResolveTokenMetadata(ctx, client, tokens)
	if err != nil {
		return nil, fmt.Errorf("metadata resolution failed for indexer page: %w", err)
	}

	balances := make(entity.Balances, len(page.Balances))
	for _, row := range page.Balances {
		if row.TokenBalance == nil {
			continue
		}
		key := utils.NormalizeAddress(row.ContractAddress)
		meta, ok := metadata[key]
		if !ok {
			continue
		}

		formatted, err := utils.FormatRawAmount(row.TokenBalance, meta.Decimals)
		if err != nil {
			s.logger.Warn("Failed to format indexed balance, skipping entry", zap.String("token", key), zap.Error(err))
			continue
		}
		balances[key] = entity.TokenBalance{
			TokenAddress:    key,
			Symbol:          meta.Symbol,
			Decimals:        meta.Decimals,
			RawAmount:       row.TokenBalance,
			FormattedAmount: formatted,
		}
	}
	return balances, nil
}

// nativeEntry builds a one-entry mapping for the chain's native currency.
func nativeEntry(netDef entity.NetworkDefinition, amount *big.Int) entity.Balances {
	symbol := netDef.NativeSymbol
	if symbol == "" {
		symbol = entity.DefaultNativeSymbol
	}
	decimals := netDef.NativeDecimals
	if decimals == 0 {
		decimals = entity.DefaultNativeDecimals
	}

	formatted, _ := utils.FormatRawAmount(amount, decimals)
	return entity.Balances{
		entity.NativeTokenAddress: entity.TokenBalance{
			TokenAddress:    entity.NativeTokenAddress,
			Symbol:          symbol,
			Decimals:        decimals,
			RawAmount:       amount,
			FormattedAmount: formatted,
		},
	}
}
