package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"

	"splits_checker/internal/app/service"
	"splits_checker/internal/infrastructure/configloader"
	"splits_checker/internal/infrastructure/indexer"
	clientprovider "splits_checker/internal/infrastructure/network/client"
	networkdefinition "splits_checker/internal/infrastructure/network/definition"
	"splits_checker/internal/infrastructure/restapi"
	"splits_checker/internal/infrastructure/tokenloader"
	"splits_checker/internal/pkg/logger"
)

const defaultConfigPath = "config/config.yml"

func main() {
	configPath := defaultConfigPath
	if fromEnv := os.Getenv("SPLITS_CHECKER_CONFIG"); fromEnv != "" {
		configPath = fromEnv
	}

	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	zapLogger, err := buildZapLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	// Bridge the global slog facade onto zap so both logging styles end up
	// in the same sink.
	slogHandler := slogzap.Option{
		Level:  slogLevelFor(cfg.Logging.Level),
		Logger: zapLogger,
	}.NewZapHandler()
	logger.Set(slog.New(slogHandler))

	logger.Info("Splits balance checker starting...")
	appLogger := logger.NewSlogAdapter()

	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger, cfg.Networks)
	tokenProvider := tokenloader.NewTokenLoader(cfg.TokenDirectory, appLogger.Info, appLogger.Warn)
	clientProvider := clientprovider.NewEVMClientProvider(cfg, appLogger.Info, appLogger.Error)

	callBuilder := service.NewCallBuilder(cfg.Protocol.MulticallAddress, cfg.Protocol.SplitMainAddress)
	metadataResolver := service.NewCachedMetadataResolver(
		service.NewTokenMetadataResolver(callBuilder, zapLogger),
		time.Duration(cfg.Balances.MetadataCacheTTLMinutes)*time.Minute,
		zapLogger,
	)
	reducer := service.NewBalanceReducer(cfg.Balances.DustThresholdWei, zapLogger)

	var indexerSvc *service.IndexerBalanceService
	if cfg.Indexer.BaseURL != "" {
		indexerClient := indexer.NewAlchemyClient(
			cfg.Indexer.BaseURL,
			cfg.Indexer.APIKey,
			time.Duration(cfg.Indexer.RequestTimeoutMillis)*time.Millisecond,
			zapLogger,
		)
		indexerSvc = service.NewIndexerBalanceService(
			indexerClient,
			metadataResolver,
			cfg.Indexer.MaxRetries,
			time.Duration(cfg.Indexer.RetryDelayMs)*time.Millisecond,
			cfg.Indexer.MaxPages,
			cfg.Indexer.RateLimit,
			cfg.Indexer.BurstLimit,
			zapLogger,
		)
		logger.Info("Indexer client initialized", "baseURL", cfg.Indexer.BaseURL)
	} else {
		logger.Warn("No indexer endpoint configured; indexed-balance operations are disabled")
	}

	balanceService := service.NewBalanceService(
		netDefProvider,
		clientProvider,
		metadataResolver,
		callBuilder,
		reducer,
		indexerSvc,
		zapLogger,
	)
	logger.Info("BalanceService initialized")

	balanceHandler := restapi.NewBalanceHandler(balanceService, netDefProvider, tokenProvider, appLogger)
	router := restapi.SetupRouter(balanceHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Shutdown signal received, stopping HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during HTTP server shutdown", "error", err)
	} else {
		logger.Info("HTTP server stopped.")
	}

	logger.Info("Splits balance checker stopped.")
}

func buildZapLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func slogLevelFor(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
