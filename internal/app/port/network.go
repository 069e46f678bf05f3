package port

import (
	"context"

	"splits_checker/internal/domain/entity"
)

// ChainClient defines the read interface for an EVM-compatible chain.
type ChainClient interface {
	// CallBatch executes the given read calls in one batched request.
	// The returned slice is index-aligned with calls: a per-call failure is
	// reported as CallResult{OK: false}, never as an error. Only a failure
	// of the whole batch returns an error.
	CallBatch(ctx context.Context, calls []entity.ContractCall) ([]entity.CallResult, error)

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition
}

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all available network definitions as a slice.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns a specific network definition by its
	// name or identifier, and true when found.
	GetNetworkDefinitionByName(nameOrIdentifier string) (entity.NetworkDefinition, bool)
}

// ChainClientProvider defines the interface for providing chain clients.
type ChainClientProvider interface {
	GetClient(networkDefinition entity.NetworkDefinition) (ChainClient, error)
}
