package restapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures and returns the Gin router.
func SetupRouter(balanceHandler *BalanceHandler) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/networks/:network/accounts/:address/balances", balanceHandler.GetAccountBalancesHandler)
		v1.GET("/networks/:network/accounts/:address/indexed-balances", balanceHandler.GetIndexedBalancesHandler)
		v1.GET("/networks/:network/splits/:address/balances", balanceHandler.GetSplitBalancesHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
