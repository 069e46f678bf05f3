package service

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
	"splits_checker/internal/pkg/utils"
)

// mockChainClient implements port.ChainClient with scripted batch results.
type mockChainClient struct {
	netDef     entity.NetworkDefinition
	results    []entity.CallResult
	batchErr   error
	batchCalls [][]entity.ContractCall
}

func (m *mockChainClient) CallBatch(ctx context.Context, calls []entity.ContractCall) ([]entity.CallResult, error) {
	m.batchCalls = append(m.batchCalls, calls)
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	if m.results != nil {
		return m.results, nil
	}
	return make([]entity.CallResult, len(calls)), nil
}

func (m *mockChainClient) Definition() entity.NetworkDefinition {
	return m.netDef
}

// mockResolver implements port.TokenMetadataResolver from a fixed metadata
// table keyed by canonical address.
type mockResolver struct {
	metadata map[string]entity.TokenMetadata
	err      error
	calls    int
}

func (m *mockResolver) ResolveTokenMetadata(ctx context.Context, client port.ChainClient, tokenAddresses []string) (map[string]entity.TokenMetadata, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]entity.TokenMetadata, len(tokenAddresses))
	for _, token := range tokenAddresses {
		key := utils.NormalizeAddress(token)
		if meta, ok := m.metadata[key]; ok {
			out[key] = meta
		}
	}
	return out, nil
}

// mockIndexerClient implements port.IndexerClient with a scripted page
// sequence. Calls past the end of the sequence replay the last page, which
// lets tests model a cursor chain that never terminates. tokenFailures and
// nativeFailures make that many leading calls fail before succeeding.
type mockIndexerClient struct {
	pages          []*entity.TokenBalancePage
	nativeBalance  *big.Int
	tokenFailures  int
	nativeFailures int
	tokenCalls     int
	nativeCalls    int
	pageKeysSeen   []string
}

func (m *mockIndexerClient) GetTokenBalances(ctx context.Context, address string, pageKey string) (*entity.TokenBalancePage, error) {
	m.tokenCalls++
	if m.tokenFailures > 0 {
		m.tokenFailures--
		return nil, errors.New("indexer unavailable")
	}
	m.pageKeysSeen = append(m.pageKeysSeen, pageKey)
	idx := len(m.pageKeysSeen) - 1
	if idx >= len(m.pages) {
		idx = len(m.pages) - 1
	}
	return m.pages[idx], nil
}

func (m *mockIndexerClient) GetNativeBalance(ctx context.Context, address string) (*big.Int, error) {
	m.nativeCalls++
	if m.nativeFailures > 0 {
		m.nativeFailures--
		return nil, errors.New("indexer unavailable")
	}
	return m.nativeBalance, nil
}

// mockNetworkProvider serves definitions from a fixed table.
type mockNetworkProvider struct {
	defs map[string]entity.NetworkDefinition
}

func (m *mockNetworkProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	out := make([]entity.NetworkDefinition, 0, len(m.defs))
	for _, def := range m.defs {
		out = append(out, def)
	}
	return out
}

func (m *mockNetworkProvider) GetNetworkDefinitionByName(name string) (entity.NetworkDefinition, bool) {
	def, ok := m.defs[name]
	return def, ok
}

// mockClientProvider always hands out the same client.
type mockClientProvider struct {
	client port.ChainClient
}

func (m *mockClientProvider) GetClient(netDef entity.NetworkDefinition) (port.ChainClient, error) {
	return m.client, nil
}

// ABI return-data encoders for scripting call results.

func encodeUint256(v *big.Int) []byte {
	return common.LeftPadBytes(v.Bytes(), 32)
}

func encodeUint8(v uint8) []byte {
	return common.LeftPadBytes([]byte{v}, 32)
}

func encodeString(s string) []byte {
	data := make([]byte, 0, 96)
	data = append(data, common.LeftPadBytes(big.NewInt(32).Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(big.NewInt(int64(len(s))).Bytes(), 32)...)
	data = append(data, common.RightPadBytes([]byte(s), 32)...)
	return data
}

func encodeSplitBalance(split, warehouse *big.Int) []byte {
	return append(encodeUint256(split), encodeUint256(warehouse)...)
}

func okResult(data []byte) entity.CallResult {
	return entity.CallResult{OK: true, ReturnData: data}
}
