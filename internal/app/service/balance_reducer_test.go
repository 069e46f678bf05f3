package service

import (
	"math/big"
	"testing"

	"go.uber.org/zap"

	"splits_checker/internal/domain/entity"
)

func testNetDef() entity.NetworkDefinition {
	return entity.NetworkDefinition{
		ChainID:        1,
		Name:           "Ethereum",
		Identifier:     "ethereum",
		NativeSymbol:   "ETH",
		NativeDecimals: 18,
	}
}

func usdcMetadata() map[string]entity.TokenMetadata {
	return map[string]entity.TokenMetadata{
		testUSDC: {Address: testUSDC, Symbol: "USDC", Decimals: 6},
	}
}

func TestReduceLengthMismatch(t *testing.T) {
	reducer := NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop())

	_, err := reducer.Reduce(testNetDef(), entity.AccountSource, []string{testUSDC}, nil, nil)
	if err == nil {
		t.Fatal("expected error for result/token length mismatch, got nil")
	}
}

func TestReduceSkipsUndefinedResults(t *testing.T) {
	reducer := NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop())

	balances, err := reducer.Reduce(testNetDef(), entity.AccountSource,
		[]string{testUSDC},
		usdcMetadata(),
		[]entity.CallResult{{OK: false}},
	)
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}
	if len(balances) != 0 {
		t.Errorf("expected undefined result to be skipped, got %d entries", len(balances))
	}
}

func TestReduceNativeUsesNetworkCurrency(t *testing.T) {
	reducer := NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop())
	oneAndHalfEth := new(big.Int).Mul(big.NewInt(15), new(big.Int).Exp(big.NewInt(10), big.NewInt(17), nil))

	balances, err := reducer.Reduce(testNetDef(), entity.AccountSource,
		[]string{entity.NativeTokenAddress},
		nil,
		[]entity.CallResult{okResult(encodeUint256(oneAndHalfEth))},
	)
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}

	native, ok := balances[entity.NativeTokenAddress]
	if !ok {
		t.Fatal("expected a native balance entry")
	}
	if native.Symbol != "ETH" || native.Decimals != 18 {
		t.Errorf("native entry has %s/%d, want ETH/18", native.Symbol, native.Decimals)
	}
	if native.FormattedAmount != "1.5" {
		t.Errorf("native formatted amount = %q, want %q", native.FormattedAmount, "1.5")
	}
}

func TestReduceNativeFallsBackToDefaults(t *testing.T) {
	reducer := NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop())
	netDef := entity.NetworkDefinition{ChainID: 1, Name: "Ethereum"}

	balances, err := reducer.Reduce(netDef, entity.AccountSource,
		[]string{entity.NativeTokenAddress},
		nil,
		[]entity.CallResult{okResult(encodeUint256(big.NewInt(1)))},
	)
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}

	native := balances[entity.NativeTokenAddress]
	if native.Symbol != entity.DefaultNativeSymbol || native.Decimals != entity.DefaultNativeDecimals {
		t.Errorf("native entry has %s/%d, want defaults %s/%d",
			native.Symbol, native.Decimals, entity.DefaultNativeSymbol, entity.DefaultNativeDecimals)
	}
}

func TestReduceSkipsTokensWithoutMetadata(t *testing.T) {
	reducer := NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop())

	balances, err := reducer.Reduce(testNetDef(), entity.AccountSource,
		[]string{testUSDC, testDAI},
		usdcMetadata(),
		[]entity.CallResult{
			okResult(encodeUint256(big.NewInt(1_000_000))),
			okResult(encodeUint256(big.NewInt(1_000_000))),
		},
	)
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("expected only the token with metadata, got %d entries", len(balances))
	}
	if _, ok := balances[testUSDC]; !ok {
		t.Error("expected the USDC entry to survive")
	}
}

func TestReduceSplitV2SumsBothComponents(t *testing.T) {
	reducer := NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop())

	balances, err := reducer.Reduce(testNetDef(), entity.SplitV2Source,
		[]string{testUSDC},
		usdcMetadata(),
		[]entity.CallResult{okResult(encodeSplitBalance(big.NewInt(1_000_000), big.NewInt(500_000)))},
	)
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}

	balance, ok := balances[testUSDC]
	if !ok {
		t.Fatal("expected a USDC entry")
	}
	if balance.RawAmount.Cmp(big.NewInt(1_500_000)) != 0 {
		t.Errorf("raw amount = %s, want sum of both components 1500000", balance.RawAmount)
	}
	if balance.FormattedAmount != "1.5" {
		t.Errorf("formatted amount = %q, want %q", balance.FormattedAmount, "1.5")
	}
}

func TestReduceSplitV2SkipsShortReturnData(t *testing.T) {
	reducer := NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop())

	balances, err := reducer.Reduce(testNetDef(), entity.SplitV2Source,
		[]string{testUSDC},
		usdcMetadata(),
		[]entity.CallResult{okResult(encodeUint256(big.NewInt(1_000_000)))},
	)
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}
	if len(balances) != 0 {
		t.Errorf("expected single-word return data to be treated as undefined, got %d entries", len(balances))
	}
}

func TestReduceDustFilterOnSplitSources(t *testing.T) {
	reducer := NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop())

	tests := []struct {
		name   string
		amount int64
		kept   bool
	}{
		{"zero filtered", 0, false},
		{"one filtered", 1, false},
		{"threshold filtered", 2, false},
		{"above threshold kept", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := reducer.Reduce(testNetDef(), entity.SplitV1Source,
				[]string{testUSDC},
				usdcMetadata(),
				[]entity.CallResult{okResult(encodeUint256(big.NewInt(tt.amount)))},
			)
			if err != nil {
				t.Fatalf("Reduce returned error: %v", err)
			}
			_, ok := balances[testUSDC]
			if ok != tt.kept {
				t.Errorf("amount %d: entry present = %v, want %v", tt.amount, ok, tt.kept)
			}
		})
	}
}

func TestReduceKeepsDustForAccounts(t *testing.T) {
	reducer := NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop())

	balances, err := reducer.Reduce(testNetDef(), entity.AccountSource,
		[]string{testUSDC},
		usdcMetadata(),
		[]entity.CallResult{okResult(encodeUint256(big.NewInt(0)))},
	)
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}

	balance, ok := balances[testUSDC]
	if !ok {
		t.Fatal("expected a zero account balance to be reported")
	}
	if balance.FormattedAmount != "0" {
		t.Errorf("formatted amount = %q, want %q", balance.FormattedAmount, "0")
	}
}

func TestReduceCanonicalizesKeys(t *testing.T) {
	reducer := NewBalanceReducer(entity.DefaultDustThreshold, zap.NewNop())

	balances, err := reducer.Reduce(testNetDef(), entity.AccountSource,
		[]string{"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"},
		usdcMetadata(),
		[]entity.CallResult{okResult(encodeUint256(big.NewInt(1_000_000)))},
	)
	if err != nil {
		t.Fatalf("Reduce returned error: %v", err)
	}
	if _, ok := balances[testUSDC]; !ok {
		t.Errorf("expected the checksummed key %s, got keys %v", testUSDC, keysOf(balances))
	}
}

func keysOf(balances entity.Balances) []string {
	keys := make([]string, 0, len(balances))
	for key := range balances {
		keys = append(keys, key)
	}
	return keys
}
