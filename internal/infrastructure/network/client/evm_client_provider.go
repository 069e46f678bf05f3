package client

import (
	"fmt"
	"sync"
	"time"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
	"splits_checker/internal/infrastructure/configloader"
)

// evmClientProvider implements the port.ChainClientProvider interface.
type evmClientProvider struct {
	clients           map[string]port.ChainClient
	mu                sync.Mutex
	loggerInfo        func(msg string, args ...any)
	loggerError       func(msg string, args ...any)
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(
	cfg *configloader.Config,
	loggerInfo func(msg string, args ...any),
	loggerError func(msg string, args ...any),
) port.ChainClientProvider {
	return &evmClientProvider{
		clients:           make(map[string]port.ChainClient),
		loggerInfo:        loggerInfo,
		loggerError:       loggerError,
		connectionTimeout: time.Duration(cfg.RPCClient.ConnectionTimeoutSeconds) * time.Second,
		rpcCallTimeout:    time.Duration(cfg.RPCClient.CallTimeoutSeconds) * time.Second,
	}
}

// GetClient retrieves a chain client for the given network definition.
// It caches clients to avoid reconnecting repeatedly.
func (p *evmClientProvider) GetClient(netDef entity.NetworkDefinition) (port.ChainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	clientKey := netDef.Identifier
	if existing, exists := p.clients[clientKey]; exists {
		return existing, nil
	}

	p.loggerInfo("Creating new EVM client", "network", netDef.Name, "rpc_primary", netDef.PrimaryRPCURL)
	newClient, err := NewEVMClient(netDef, p.connectionTimeout, p.rpcCallTimeout)
	if err != nil {
		p.loggerError("Failed to create EVM client", "network", netDef.Name, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Name, err)
	}

	p.clients[clientKey] = newClient
	p.loggerInfo("Successfully created and cached new EVM client", "network", netDef.Name)
	return newClient, nil
}
