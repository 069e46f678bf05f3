package entity

// TokenMetadata holds the on-chain metadata of a fungible token.
type TokenMetadata struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// TokenInfo describes a tracked token as configured for a network.
type TokenInfo struct {
	ChainID uint64 `json:"chainId"`
	Address string `json:"address"`
	Symbol  string `json:"symbol"`
}
