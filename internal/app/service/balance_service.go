package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
	"splits_checker/internal/pkg/utils"
)

// balanceServiceImpl implements port.BalanceService. Metadata resolution and
// the balance batch are issued concurrently and joined; their results are
// recombined by token-list index, never by arrival order.
type balanceServiceImpl struct {
	networkProvider port.NetworkDefinitionProvider
	clientProvider  port.ChainClientProvider
	resolver        port.TokenMetadataResolver
	builder         *CallBuilder
	reducer         *BalanceReducer
	indexerSvc      *IndexerBalanceService
	logger          *zap.Logger
}

// NewBalanceService creates a new BalanceService. indexerSvc may be nil when
// no indexer endpoint is configured; indexer-backed operations then fail
// with entity.ErrIndexerNotConfigured before any I/O.
func NewBalanceService(
	np port.NetworkDefinitionProvider,
	cp port.ChainClientProvider,
	resolver port.TokenMetadataResolver,
	builder *CallBuilder,
	reducer *BalanceReducer,
	indexerSvc *IndexerBalanceService,
	logger *zap.Logger,
) port.BalanceService {
	return &balanceServiceImpl{
		networkProvider: np,
		clientProvider:  cp,
		resolver:        resolver,
		builder:         builder,
		reducer:         reducer,
		indexerSvc:      indexerSvc,
		logger:          logger.Named("BalanceService"),
	}
}

// GetAccountBalances fetches balances of the given tokens held directly by
// an account.
func (s *balanceServiceImpl) GetAccountBalances(ctx context.Context, network string, account string, tokenAddresses []string) (entity.Balances, error) {
	return s.fetchBalances(ctx, network, account, entity.AccountSource, tokenAddresses)
}

// GetSplitBalances fetches distributable balances of a split contract.
func (s *balanceServiceImpl) GetSplitBalances(ctx context.Context, network string, split string, kind entity.BalanceSourceKind, tokenAddresses []string) (entity.Balances, error) {
	if !kind.IsSplit() {
		return nil, fmt.Errorf("balance source %s is not a split source", kind)
	}
	return s.fetchBalances(ctx, network, split, kind, tokenAddresses)
}

// GetIndexedBalances fetches every balance the external indexer knows for an
// account, following page cursors to completion.
func (s *balanceServiceImpl) GetIndexedBalances(ctx context.Context, network string, account string) (entity.Balances, error) {
	if s.indexerSvc == nil {
		return nil, entity.ErrIndexerNotConfigured
	}

	client, err := s.clientForNetwork(network)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Fetching indexed balances", zap.String("network", network), zap.String("account", account))
	return s.indexerSvc.FetchAllBalances(ctx, client, account)
}

func (s *balanceServiceImpl) fetchBalances(ctx context.Context, network string, holder string, kind entity.BalanceSourceKind, tokenAddresses []string) (entity.Balances, error) {
	client, err := s.clientForNetwork(network)
	if err != nil {
		return nil, err
	}
	netDef := client.Definition()

	tokens := normalizeTokenList(tokenAddresses)
	if len(tokens) == 0 {
		return entity.Balances{}, nil
	}

	erc20Tokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !entity.IsNativeToken(token) {
			erc20Tokens = append(erc20Tokens, token)
		}
	}

	calls, err := s.builder.BuildBalanceCalls(kind, holder, tokens)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Executing balance fetch",
		zap.String("network", netDef.Name),
		zap.String("holder", holder),
		zap.String("source", kind.String()),
		zap.Int("tokenCount", len(tokens)))

	var (
		metadata map[string]entity.TokenMetadata
		results  []entity.CallResult
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		resolved, err := s.resolver.ResolveTokenMetadata(egCtx, client, erc20Tokens)
		if err != nil {
			return err
		}
		metadata = resolved
		return nil
	})
	eg.Go(func() error {
		batchResults, err := client.CallBatch(egCtx, calls)
		if err != nil {
			return err
		}
		results = batchResults
		return nil
	})
	if err := eg.Wait(); err != nil {
		s.logger.Error("Balance fetch failed",
			zap.String("network", netDef.Name),
			zap.String("holder", holder),
			zap.Error(err))
		return nil, fmt.Errorf("balance fetch for %s on %s failed: %w", holder, netDef.Name, err)
	}

	return s.reducer.Reduce(netDef, kind, tokens, metadata, results)
}

func (s *balanceServiceImpl) clientForNetwork(network string) (port.ChainClient, error) {
	netDef, ok := s.networkProvider.GetNetworkDefinitionByName(network)
	if !ok {
		return nil, fmt.Errorf("network %q: %w", network, entity.ErrNetworkNotConfigured)
	}
	return s.clientProvider.GetClient(netDef)
}

// normalizeTokenList canonicalizes identifiers while preserving order and
// dropping duplicate keys.
func normalizeTokenList(tokenAddresses []string) []string {
	tokens := make([]string, 0, len(tokenAddresses))
	seen := make(map[string]struct{}, len(tokenAddresses))
	for _, token := range tokenAddresses {
		key := utils.NormalizeAddress(token)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tokens = append(tokens, key)
	}
	return tokens
}
