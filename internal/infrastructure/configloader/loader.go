package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"splits_checker/internal/domain/entity"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// RPCClientConfig holds configuration for chain RPC clients.
type RPCClientConfig struct {
	ConnectionTimeoutSeconds int `yaml:"connectionTimeoutSeconds"`
	CallTimeoutSeconds       int `yaml:"callTimeoutSeconds"`
}

// IndexerConfig holds configuration for the external balance indexer.
// An empty BaseURL disables indexer-backed operations.
type IndexerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	MaxRetries           int    `yaml:"maxRetries"`
	RetryDelayMs         int64  `yaml:"retryDelayMs"`
	MaxPages             int    `yaml:"maxPages"`
	RateLimit            int    `yaml:"rateLimit"`
	BurstLimit           int    `yaml:"burstLimit"`
}

// ProtocolConfig holds the splits protocol contract addresses. Defaults are
// the canonical mainnet deployments.
type ProtocolConfig struct {
	SplitMainAddress string `yaml:"splitMainAddress"`
	MulticallAddress string `yaml:"multicallAddress"`
}

// BalancesConfig holds tuning for balance fetching and reduction.
type BalancesConfig struct {
	DustThresholdWei        int64 `yaml:"dustThresholdWei"`
	MetadataCacheTTLMinutes int   `yaml:"metadataCacheTTLMinutes"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server         ServerConfig               `yaml:"server"`
	Logging        LoggingConfig              `yaml:"logging"`
	RPCClient      RPCClientConfig            `yaml:"rpcClient"`
	Indexer        IndexerConfig              `yaml:"indexer"`
	Protocol       ProtocolConfig             `yaml:"protocol"`
	Balances       BalancesConfig             `yaml:"balances"`
	Networks       []entity.NetworkDefinition `yaml:"networks"`
	TokenDirectory string                     `yaml:"tokenDirectory"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.RPCClient.ConnectionTimeoutSeconds <= 0 {
		cfg.RPCClient.ConnectionTimeoutSeconds = 10
	}
	if cfg.RPCClient.CallTimeoutSeconds <= 0 {
		cfg.RPCClient.CallTimeoutSeconds = 10
	}

	if cfg.Indexer.RequestTimeoutMillis <= 0 {
		cfg.Indexer.RequestTimeoutMillis = 10000
	}
	if cfg.Indexer.MaxRetries <= 0 {
		cfg.Indexer.MaxRetries = entity.DefaultMaxRetries
	}
	if cfg.Indexer.RetryDelayMs <= 0 {
		cfg.Indexer.RetryDelayMs = 250
	}
	if cfg.Indexer.MaxPages <= 0 {
		cfg.Indexer.MaxPages = entity.DefaultMaxIndexerPages
	}
	if cfg.Indexer.RateLimit <= 0 {
		cfg.Indexer.RateLimit = 5
	}
	if cfg.Indexer.BurstLimit <= 0 {
		cfg.Indexer.BurstLimit = 5
	}

	if cfg.Protocol.SplitMainAddress == "" {
		cfg.Protocol.SplitMainAddress = entity.SplitMainAddress
		logrus.Infof("Protocol.SplitMainAddress not set, defaulting to %s", cfg.Protocol.SplitMainAddress)
	}
	if cfg.Protocol.MulticallAddress == "" {
		cfg.Protocol.MulticallAddress = entity.Multicall3Address
		logrus.Infof("Protocol.MulticallAddress not set, defaulting to %s", cfg.Protocol.MulticallAddress)
	}

	if cfg.Balances.DustThresholdWei <= 0 {
		cfg.Balances.DustThresholdWei = entity.DefaultDustThreshold
	}
	if cfg.Balances.MetadataCacheTTLMinutes <= 0 {
		cfg.Balances.MetadataCacheTTLMinutes = 60
	}
	if cfg.TokenDirectory == "" {
		cfg.TokenDirectory = "data/tokens"
	}

	for i := range cfg.Networks {
		if cfg.Networks[i].NativeSymbol == "" {
			cfg.Networks[i].NativeSymbol = entity.DefaultNativeSymbol
			logrus.Warnf("Network '%s' has no nativeSymbol, defaulting to %s", cfg.Networks[i].Name, entity.DefaultNativeSymbol)
		}
		if cfg.Networks[i].NativeDecimals == 0 {
			cfg.Networks[i].NativeDecimals = entity.DefaultNativeDecimals
		}
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}
