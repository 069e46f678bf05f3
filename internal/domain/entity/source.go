package entity

// BalanceSourceKind selects how balance read calls are built for a holder.
type BalanceSourceKind int

const (
	// AccountSource reads plain account balances (balanceOf / getEthBalance).
	AccountSource BalanceSourceKind = iota
	// SplitV1Source reads balances from the SplitMain registry.
	SplitV1Source
	// SplitV2Source reads the split's own two-part balance
	// (on-contract balance plus warehouse-held balance).
	SplitV2Source
)

// IsSplit reports whether the source is a split contract of either version.
func (k BalanceSourceKind) IsSplit() bool {
	return k == SplitV1Source || k == SplitV2Source
}

func (k BalanceSourceKind) String() string {
	switch k {
	case AccountSource:
		return "account"
	case SplitV1Source:
		return "splitV1"
	case SplitV2Source:
		return "splitV2"
	default:
		return "unknown"
	}
}
