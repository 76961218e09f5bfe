package market

// ProductStatus tracks whether a listing can still be bought.
type ProductStatus string

const (
	ProductAvailable ProductStatus = "available"
	ProductSold      ProductStatus = "sold"
)

// AccountStatus gates whether a user may check out.
type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountBanned    AccountStatus = "banned"
)

// Blocked reports whether the account must be refused at checkout.
func (s AccountStatus) Blocked() bool {
	return s == AccountSuspended || s == AccountBanned
}

// TxType marks the direction of a wallet ledger entry.
type TxType string

const (
	TxPurchase TxType = "purchase"
	TxSale     TxType = "sale"
)

// TxStatus distinguishes confirmed movements from seller proceeds that
// still await promotion to the available balance.
type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
)

// RecordKind selects which side of a purchase/sale pair a record is.
type RecordKind string

const (
	RecordPurchase RecordKind = "purchase"
	RecordSale     RecordKind = "sale"
)
