package entity

import "github.com/ethereum/go-ethereum/common"

// ContractCall describes a single read call inside a batched request.
// Data is the fully packed calldata for an eth_call to To.
type ContractCall struct {
	To   common.Address
	Data []byte
}

// CallResult is the outcome of one call in a batch. OK is false when the
// call reverted or the target returned nothing decodable; ReturnData is only
// meaningful when OK is true.
type CallResult struct {
	OK         bool
	ReturnData []byte
}
