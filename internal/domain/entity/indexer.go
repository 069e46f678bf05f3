package entity

import "math/big"

// IndexedTokenBalance is one token balance row as reported by the external
// indexer. TokenBalance is nil when the indexer could not produce a value
// for the contract (equivalent to an undefined batch result).
type IndexedTokenBalance struct {
	ContractAddress string
	TokenBalance    *big.Int
}

// TokenBalancePage is one page of indexer results. An empty PageKey means
// the page chain has terminated.
type TokenBalancePage struct {
	Balances []IndexedTokenBalance
	PageKey  string
}
