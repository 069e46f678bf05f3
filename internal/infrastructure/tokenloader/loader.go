package tokenloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
	"splits_checker/internal/pkg/utils"
)

// TokenFileLoader implements the port.TokenListProvider interface, reading
// per-network default token lists from JSON files named after the network
// identifier.
type TokenFileLoader struct {
	tokenDirPath string
	loggerInfo   func(msg string, args ...any)
	loggerWarn   func(msg string, args ...any)
}

// NewTokenLoader creates a new TokenFileLoader.
func NewTokenLoader(tokenDirPath string, loggerInfo func(msg string, args ...any), loggerWarn func(msg string, args ...any)) port.TokenListProvider {
	return &TokenFileLoader{
		tokenDirPath: tokenDirPath,
		loggerInfo:   loggerInfo,
		loggerWarn:   loggerWarn,
	}
}

// GetTokensForNetwork reads the token list for a network from
// <tokenDir>/<identifier>.json. A missing file is not an error: the network
// simply has no default tracked tokens. Entries whose chainId does not match
// the network are skipped.
func (l *TokenFileLoader) GetTokensForNetwork(netDef entity.NetworkDefinition) ([]entity.TokenInfo, error) {
	path := filepath.Join(l.tokenDirPath, netDef.Identifier+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.loggerWarn("No token list file for network", "network", netDef.Identifier, "path", path)
			return []entity.TokenInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read token list %s: %w", path, err)
	}

	var tokens []entity.TokenInfo
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token list %s: %w", path, err)
	}

	valid := make([]entity.TokenInfo, 0, len(tokens))
	for _, token := range tokens {
		if token.ChainID != 0 && token.ChainID != netDef.ChainID {
			l.loggerWarn("Token ChainID mismatch, skipping token",
				"network", netDef.Identifier, "token", token.Symbol,
				"token_chain_id", token.ChainID, "network_chain_id", netDef.ChainID)
			continue
		}
		token.Address = utils.NormalizeAddress(token.Address)
		valid = append(valid, token)
	}

	l.loggerInfo("Loaded token list for network", "network", netDef.Identifier, "token_count", len(valid))
	return valid, nil
}
