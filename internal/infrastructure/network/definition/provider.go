package definition

import (
	"strings"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
)

// networkDefinitionProvider implements port.NetworkDefinitionProvider over
// the configured network list.
type networkDefinitionProvider struct {
	definitions []entity.NetworkDefinition
	byName      map[string]entity.NetworkDefinition
	logger      port.Logger
}

// NewNetworkDefinitionProvider builds a provider from configured networks,
// indexed by lowercased name and identifier.
func NewNetworkDefinitionProvider(logger port.Logger, networks []entity.NetworkDefinition) port.NetworkDefinitionProvider {
	p := &networkDefinitionProvider{
		definitions: networks,
		byName:      make(map[string]entity.NetworkDefinition, len(networks)*2),
		logger:      logger,
	}
	for _, netDef := range networks {
		if netDef.Name != "" {
			p.byName[strings.ToLower(netDef.Name)] = netDef
		}
		if netDef.Identifier != "" {
			p.byName[strings.ToLower(netDef.Identifier)] = netDef
		}
	}
	logger.Info("NetworkDefinitionProvider initialized", "network_count", len(networks))
	return p
}

// GetAllNetworkDefinitions returns all available network definitions as a slice.
func (p *networkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	out := make([]entity.NetworkDefinition, len(p.definitions))
	copy(out, p.definitions)
	return out
}

// GetNetworkDefinitionByName returns a specific network definition by its
// name or identifier, and true when found.
func (p *networkDefinitionProvider) GetNetworkDefinitionByName(nameOrIdentifier string) (entity.NetworkDefinition, bool) {
	netDef, ok := p.byName[strings.ToLower(nameOrIdentifier)]
	return netDef, ok
}
