package entity

// NetworkDefinition holds the configuration for a specific blockchain network.
// This structure is defined at the domain level to be used across application
// and infrastructure layers.
type NetworkDefinition struct {
	ChainID         uint64   `json:"chainId" yaml:"chainId"`
	Name            string   `json:"name" yaml:"name"`
	Identifier      string   `json:"identifier" yaml:"identifier"`
	NativeSymbol    string   `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeDecimals  uint8    `json:"nativeDecimals" yaml:"nativeDecimals"`
	PrimaryRPCURL   string   `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs []string `json:"fallbackRpcUrls" yaml:"fallbackRpcUrls"`
}
