package market

import "time"

// Money is integer cents end to end; no floats touch balances.

type Product struct {
	ID         string        `json:"id"`
	OwnerID    string        `json:"owner_id"`
	OwnerName  string        `json:"owner_name"`
	Name       string        `json:"name"`
	PriceCents int64         `json:"price_cents"`
	Quantity   int           `json:"quantity"`
	Status     ProductStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type User struct {
	ID                   string
	Name                 string
	Email                string
	Status               AccountStatus
	WalletAvailableCents int64
	WalletPendingCents   int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// WalletTransaction is one immutable ledger entry. The sign of
// AmountCents encodes direction: negative debits, positive credits.
// Balances on User are a cached aggregate of confirmed entries.
type WalletTransaction struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Type             TxType    `json:"type"`
	AmountCents      int64     `json:"amount_cents"`
	Description      string    `json:"description"`
	Status           TxStatus  `json:"status"`
	RelatedProductID *string   `json:"related_product_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// OrderRecord is one half of the purchase/sale pair written per cart
// line. Both halves carry the same business payload; OwnerID selects
// whose history the record files under.
type OrderRecord struct {
	ID          string
	OwnerID     string
	Kind        RecordKind
	BuyerID     string
	SellerID    string
	ProductID   string
	ProductName string
	PriceCents  int64
	Quantity    int
	Size        string
	IsVerified  bool
	CreatedAt   time.Time
}

type Notification struct {
	ID        string
	UserID    string
	Message   string
	Link      string
	Read      bool
	CreatedAt time.Time
}

// CartLine is request-scoped checkout input. The embedded price and
// stock values are client hints and are revalidated against the live
// product rows before anything is written.
type CartLine struct {
	ProductID      string
	Quantity       int
	Size           string
	UnitPriceCents int64
}
