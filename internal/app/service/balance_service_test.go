package service

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"go.uber.org/zap"

	"splits_checker/internal/domain/entity"
)

func newTestBalanceService(client *mockChainClient, resolver *mockResolver) *balanceServiceImpl {
	return &balanceServiceImpl{
		networkProvider: &mockNetworkProvider{defs: map[string]entity.NetworkDefinition{
			"ethereum": testNetDef(),
		}},
		clientProvider: &mockClientProvider{client: client},
		resolver:       resolver,
		builder:        newTestBuilder(),
		reducer:        NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop()),
		logger:         zap.NewNop(),
	}
}

func TestGetAccountBalances(t *testing.T) {
	oneEth := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	client := &mockChainClient{
		netDef: testNetDef(),
		results: []entity.CallResult{
			okResult(encodeUint256(oneEth)),
			okResult(encodeUint256(big.NewInt(2_500_000))),
		},
	}
	svc := newTestBalanceService(client, &mockResolver{metadata: stableMetadata()})

	balances, err := svc.GetAccountBalances(context.Background(), "ethereum", testHolder,
		[]string{entity.NativeTokenAddress, testUSDC})
	if err != nil {
		t.Fatalf("GetAccountBalances returned error: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(balances))
	}
	if balances[entity.NativeTokenAddress].FormattedAmount != "1" {
		t.Errorf("native formatted = %q, want %q", balances[entity.NativeTokenAddress].FormattedAmount, "1")
	}
	if balances[testUSDC].FormattedAmount != "2.5" {
		t.Errorf("USDC formatted = %q, want %q", balances[testUSDC].FormattedAmount, "2.5")
	}
}

func TestGetAccountBalancesDeduplicatesTokenList(t *testing.T) {
	client := &mockChainClient{
		netDef: testNetDef(),
		results: []entity.CallResult{
			okResult(encodeUint256(big.NewInt(1_000_000))),
		},
	}
	svc := newTestBalanceService(client, &mockResolver{metadata: stableMetadata()})

	balances, err := svc.GetAccountBalances(context.Background(), "ethereum", testHolder,
		[]string{testUSDC, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"})
	if err != nil {
		t.Fatalf("GetAccountBalances returned error: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("expected duplicate token to collapse to 1 entry, got %d", len(balances))
	}
	if len(client.batchCalls) != 1 || len(client.batchCalls[0]) != 1 {
		t.Error("expected a single balance call for the deduplicated token")
	}
}

func TestGetAccountBalancesEmptyTokenList(t *testing.T) {
	client := &mockChainClient{netDef: testNetDef()}
	svc := newTestBalanceService(client, &mockResolver{})

	balances, err := svc.GetAccountBalances(context.Background(), "ethereum", testHolder, nil)
	if err != nil {
		t.Fatalf("GetAccountBalances returned error: %v", err)
	}
	if len(balances) != 0 {
		t.Errorf("expected empty mapping, got %d entries", len(balances))
	}
	if len(client.batchCalls) != 0 {
		t.Errorf("expected no batch calls for an empty token list, got %d", len(client.batchCalls))
	}
}

func TestGetAccountBalancesUnknownNetwork(t *testing.T) {
	svc := newTestBalanceService(&mockChainClient{netDef: testNetDef()}, &mockResolver{})

	_, err := svc.GetAccountBalances(context.Background(), "hyperchain", testHolder, []string{testUSDC})
	if !errors.Is(err, entity.ErrNetworkNotConfigured) {
		t.Fatalf("expected ErrNetworkNotConfigured, got %v", err)
	}
}

func TestGetSplitBalancesRejectsAccountSource(t *testing.T) {
	svc := newTestBalanceService(&mockChainClient{netDef: testNetDef()}, &mockResolver{})

	if _, err := svc.GetSplitBalances(context.Background(), "ethereum", testHolder, entity.AccountSource, []string{testUSDC}); err == nil {
		t.Fatal("expected error for non-split source, got nil")
	}
}

func TestGetSplitBalancesV2(t *testing.T) {
	client := &mockChainClient{
		netDef: testNetDef(),
		results: []entity.CallResult{
			okResult(encodeSplitBalance(big.NewInt(600_000), big.NewInt(400_000))),
		},
	}
	svc := newTestBalanceService(client, &mockResolver{metadata: stableMetadata()})

	balances, err := svc.GetSplitBalances(context.Background(), "ethereum", testHolder, entity.SplitV2Source, []string{testUSDC})
	if err != nil {
		t.Fatalf("GetSplitBalances returned error: %v", err)
	}
	if balances[testUSDC].FormattedAmount != "1" {
		t.Errorf("split balance formatted = %q, want summed %q", balances[testUSDC].FormattedAmount, "1")
	}
}

func TestGetIndexedBalancesWithoutIndexer(t *testing.T) {
	svc := newTestBalanceService(&mockChainClient{netDef: testNetDef()}, &mockResolver{})

	_, err := svc.GetIndexedBalances(context.Background(), "ethereum", testHolder)
	if !errors.Is(err, entity.ErrIndexerNotConfigured) {
		t.Fatalf("expected ErrIndexerNotConfigured, got %v", err)
	}
}
