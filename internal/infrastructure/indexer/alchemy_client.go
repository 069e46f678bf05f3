package indexer

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
	"splits_checker/internal/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// alchemyClientImpl implements port.IndexerClient against an Alchemy-style
// JSON-RPC endpoint exposing alchemy_getTokenBalances with pageKey
// pagination.
type alchemyClientImpl struct {
	client      *fasthttp.Client
	endpointURL string
	timeout     time.Duration
	logger      *zap.Logger
}

// NewAlchemyClient creates a new indexer client. The API key is appended to
// the base URL path, the usual Alchemy endpoint shape.
func NewAlchemyClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger) port.IndexerClient {
	endpointURL := strings.TrimRight(baseURL, "/")
	if apiKey != "" {
		endpointURL = endpointURL + "/" + apiKey
	}
	return &alchemyClientImpl{
		client:      &fasthttp.Client{},
		endpointURL: endpointURL,
		timeout:     timeout,
		logger:      logger.Named("AlchemyClient"),
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcEnvelope struct {
	Result jsoniter.RawMessage `json:"result"`
	Error  *rpcError           `json:"error"`
}

type pageKeyParam struct {
	PageKey string `json:"pageKey"`
}

type tokenBalancesResult struct {
	Address       string `json:"address"`
	TokenBalances []struct {
		ContractAddress string `json:"contractAddress"`
		TokenBalance    string `json:"tokenBalance"`
	} `json:"tokenBalances"`
	PageKey string `json:"pageKey"`
}

// GetTokenBalances fetches one page of ERC-20 balances for an address.
// An empty pageKey requests the first page.
func (c *alchemyClientImpl) GetTokenBalances(ctx context.Context, address string, pageKey string) (*entity.TokenBalancePage, error) {
	params := []interface{}{address, "erc20"}
	if pageKey != "" {
		params = append(params, pageKeyParam{PageKey: pageKey})
	}

	var result tokenBalancesResult
	if err := c.call(ctx, "alchemy_getTokenBalances", params, &result); err != nil {
		return nil, err
	}

	page := &entity.TokenBalancePage{
		Balances: make([]entity.IndexedTokenBalance, 0, len(result.TokenBalances)),
		PageKey:  result.PageKey,
	}
	for _, row := range result.TokenBalances {
		page.Balances = append(page.Balances, entity.IndexedTokenBalance{
			ContractAddress: utils.NormalizeAddress(row.ContractAddress),
			TokenBalance:    parseHexAmount(row.TokenBalance),
		})
	}

	c.logger.Debug("Fetched token balance page",
		zap.String("address", address),
		zap.Int("rowCount", len(page.Balances)),
		zap.Bool("hasNextPage", page.PageKey != ""))
	return page, nil
}

// GetNativeBalance fetches the address's native currency balance.
func (c *alchemyClientImpl) GetNativeBalance(ctx context.Context, address string) (*big.Int, error) {
	var result string
	if err := c.call(ctx, "eth_getBalance", []interface{}{address, "latest"}, &result); err != nil {
		return nil, err
	}

	balance := parseHexAmount(result)
	if balance == nil {
		return nil, fmt.Errorf("unparseable native balance %q for %s", result, address)
	}
	return balance, nil
}

// call posts one JSON-RPC request and unmarshals the result field into out.
func (c *alchemyClientImpl) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.endpointURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(body)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute indexer request", zap.String("method", method), zap.Error(err))
			return fmt.Errorf("failed to execute %s request: %w", method, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute indexer request (with default timeout)", zap.String("method", method), zap.Error(err))
			return fmt.Errorf("failed to execute %s request with default timeout: %w", method, err)
		}
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Indexer API request failed",
			zap.String("method", method),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody))
		return fmt.Errorf("indexer %s request failed with status %d: %s", method, resp.StatusCode(), string(rawBody))
	}

	var envelope rpcEnvelope
	if err := json.Unmarshal(rawBody, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal indexer %s response: %w", method, err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("indexer %s returned error %d: %s", method, envelope.Error.Code, envelope.Error.Message)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to unmarshal indexer %s result: %w", method, err)
	}
	return nil
}

// parseHexAmount decodes a 0x-prefixed hex quantity. It returns nil for
// empty, null-ish, or malformed values so callers treat the row as
// undefined rather than zero.
func parseHexAmount(value string) *big.Int {
	if value == "" || value == "0x" {
		return nil
	}
	trimmed := strings.TrimPrefix(value, "0x")
	amount, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return nil
	}
	return amount
}
