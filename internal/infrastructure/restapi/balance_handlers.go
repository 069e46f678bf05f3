package restapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"splits_checker/internal/app/port"
	"splits_checker/internal/domain/entity"
)

// APIBalancesResponse is the response envelope for balance endpoints.
type APIBalancesResponse struct {
	Data struct {
		Network  string          `json:"network"`
		Address  string          `json:"address"`
		Balances entity.Balances `json:"balances"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APIErrorResponse is the envelope for failed requests.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// BalanceHandler handles HTTP requests for balance queries.
type BalanceHandler struct {
	balanceService  port.BalanceService
	networkProvider port.NetworkDefinitionProvider
	tokenProvider   port.TokenListProvider
	logger          port.Logger
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(
	bs port.BalanceService,
	np port.NetworkDefinitionProvider,
	tp port.TokenListProvider,
	logger port.Logger,
) *BalanceHandler {
	return &BalanceHandler{
		balanceService:  bs,
		networkProvider: np,
		tokenProvider:   tp,
		logger:          logger,
	}
}

// GetAccountBalancesHandler handles
// GET /networks/:network/accounts/:address/balances?tokens=a,b,c
// Without an explicit token list the network's configured default list is
// used, with the native currency prepended.
func (h *BalanceHandler) GetAccountBalancesHandler(c *gin.Context) {
	network := c.Param("network")
	address := c.Param("address")

	tokens, ok := h.resolveTokenList(c, network)
	if !ok {
		return
	}

	balances, err := h.balanceService.GetAccountBalances(c.Request.Context(), network, address, tokens)
	recordFetch("account", err)
	if err != nil {
		h.writeError(c, network, err)
		return
	}
	h.writeBalances(c, network, address, balances)
}

// GetSplitBalancesHandler handles
// GET /networks/:network/splits/:address/balances?version=1|2&tokens=a,b,c
func (h *BalanceHandler) GetSplitBalancesHandler(c *gin.Context) {
	network := c.Param("network")
	address := c.Param("address")

	kind := entity.SplitV2Source
	switch c.DefaultQuery("version", "2") {
	case "1":
		kind = entity.SplitV1Source
	case "2":
	default:
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "version must be 1 or 2"})
		return
	}

	tokens, ok := h.resolveTokenList(c, network)
	if !ok {
		return
	}

	balances, err := h.balanceService.GetSplitBalances(c.Request.Context(), network, address, kind, tokens)
	recordFetch(kind.String(), err)
	if err != nil {
		h.writeError(c, network, err)
		return
	}
	h.writeBalances(c, network, address, balances)
}

// GetIndexedBalancesHandler handles
// GET /networks/:network/accounts/:address/indexed-balances
func (h *BalanceHandler) GetIndexedBalancesHandler(c *gin.Context) {
	network := c.Param("network")
	address := c.Param("address")

	balances, err := h.balanceService.GetIndexedBalances(c.Request.Context(), network, address)
	recordFetch("indexed", err)
	if err != nil {
		h.writeError(c, network, err)
		return
	}
	h.writeBalances(c, network, address, balances)
}

// resolveTokenList reads the tokens query parameter, falling back to the
// network's configured default token list. It writes the error response
// itself and returns false when resolution fails.
func (h *BalanceHandler) resolveTokenList(c *gin.Context, network string) ([]string, bool) {
	if raw := c.Query("tokens"); raw != "" {
		parts := strings.Split(raw, ",")
		tokens := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				tokens = append(tokens, trimmed)
			}
		}
		return tokens, true
	}

	netDef, ok := h.networkProvider.GetNetworkDefinitionByName(network)
	if !ok {
		c.JSON(http.StatusNotFound, APIErrorResponse{Error: "network " + network + " is not configured"})
		return nil, false
	}

	tracked, err := h.tokenProvider.GetTokensForNetwork(netDef)
	if err != nil {
		h.logger.Error("Failed to load default token list", "network", network, "error", err)
		c.JSON(http.StatusInternalServerError, APIErrorResponse{Error: "failed to load default token list"})
		return nil, false
	}

	tokens := make([]string, 0, len(tracked)+1)
	tokens = append(tokens, entity.NativeTokenAddress)
	for _, t := range tracked {
		tokens = append(tokens, t.Address)
	}
	return tokens, true
}

func (h *BalanceHandler) writeBalances(c *gin.Context, network string, address string, balances entity.Balances) {
	response := APIBalancesResponse{StatusMessage: "Balances retrieved successfully."}
	response.Data.Network = network
	response.Data.Address = address
	response.Data.Balances = balances
	if len(balances) == 0 {
		response.StatusMessage = "No balances found for the requested tokens."
	}
	c.JSON(http.StatusOK, response)
}

func (h *BalanceHandler) writeError(c *gin.Context, network string, err error) {
	h.logger.Warn("Balance request failed", "network", network, "error", err)

	status := http.StatusBadGateway
	switch {
	case errors.Is(err, entity.ErrIndexerNotConfigured):
		status = http.StatusNotImplemented
	case errors.Is(err, entity.ErrNativeTokenMetadata):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrNetworkNotConfigured):
		status = http.StatusNotFound
	}
	c.JSON(status, APIErrorResponse{Error: err.Error()})
}
