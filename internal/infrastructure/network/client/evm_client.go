package client

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
)

// EVMClient implements the port.ChainClient interface for EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	netDef         entity.NetworkDefinition
	rpcCallTimeout time.Duration
}

// NewEVMClient creates a new EVM client for the given network definition,
// trying the primary RPC endpoint first and falling back in order.
func NewEVMClient(netDef entity.NetworkDefinition, connectionTimeout time.Duration, rpcCallTimeout time.Duration) (port.ChainClient, error) {
	rpcURLs := append([]string{netDef.PrimaryRPCURL}, netDef.FallbackRPCURLs...)
	var lastErr error

	for _, rpcURL := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		ethClient, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			return &EVMClient{ethClient: ethClient, netDef: netDef, rpcCallTimeout: rpcCallTimeout}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", netDef.Name, lastErr)
}

// CallBatch executes the given read calls as a single JSON-RPC batch of
// eth_call elements. Results are index-aligned with calls; a reverted or
// empty-returning call yields CallResult{OK: false}. Only a failure of the
// batch round trip itself returns an error.
func (c *EVMClient) CallBatch(ctx context.Context, calls []entity.ContractCall) ([]entity.CallResult, error) {
	if len(calls) == 0 {
		return []entity.CallResult{}, nil
	}

	batchElems := make([]rpc.BatchElem, len(calls))
	for i, call := range calls {
		callArgs := map[string]interface{}{
			"to":   call.To,
			"data": hexutil.Bytes(call.Data),
		}
		batchElems[i] = rpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{callArgs, "latest"},
			Result: new(hexutil.Bytes),
		}
	}

	rawRPCClient := c.ethClient.Client()

	rpcCallCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	if err := rawRPCClient.BatchCallContext(rpcCallCtx, batchElems); err != nil {
		return nil, fmt.Errorf("RPC batch call failed: %w", err)
	}

	results := make([]entity.CallResult, len(calls))
	for i, elem := range batchElems {
		if elem.Error != nil {
			// Reverted or rejected call; reported as undefined, not an error.
			continue
		}
		returnData, ok := elem.Result.(*hexutil.Bytes)
		if !ok || returnData == nil || len(*returnData) == 0 {
			// Empty return data means the target does not implement the
			// selector (e.g. not a token at this address).
			continue
		}
		results[i] = entity.CallResult{OK: true, ReturnData: *returnData}
	}
	return results, nil
}

// Definition returns the network definition for this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}
