package settlement

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mahdisharifi109/Rewear-sub000/internal/market"
)

// WalletMove adjusts the cached balance columns of one user. Every move
// is paired with at least one ledger entry in the same batch; balances
// never change without one.
type WalletMove struct {
	UserID         string
	AvailableDelta int64
	PendingDelta   int64
}

// StockDecrement reduces one product's quantity. The sold transition is
// derived inside the commit from the row it actually hits, not from the
// earlier validated read.
type StockDecrement struct {
	ProductID string
	Qty       int
}

// Batch is the full description of one settlement's writes. It is
// assembled without I/O and submitted as a single atomic unit; nothing
// in it has been persisted until Commit succeeds.
type Batch struct {
	OrderID       string
	BuyerID       string
	Ledger        []market.WalletTransaction
	WalletMoves   []WalletMove
	Records       []market.OrderRecord
	Stock         []StockDecrement
	Notifications []market.Notification

	WalletApplied int64
	Charged       int64
}

// BuildBatch assembles every settlement side effect for one checkout:
// the buyer's wallet debit (when any was applied), and per cart line
// the purchase/sale record pair, the stock decrement, the seller's
// pending credit with its ledger entry, and the optional seller
// notification for verified delivery.
func BuildBatch(buyer *market.User, lines []market.CartLine, live map[string]*market.Product, split Split, verified bool) (*Batch, error) {
	b := &Batch{
		OrderID:       uuid.NewString(),
		BuyerID:       buyer.ID,
		WalletApplied: split.WalletApplied,
		Charged:       split.Charged,
	}

	if split.WalletApplied > 0 {
		b.Ledger = append(b.Ledger, market.WalletTransaction{
			ID:          uuid.NewString(),
			UserID:      buyer.ID,
			Type:        market.TxPurchase,
			AmountCents: -split.WalletApplied,
			Description: DebitDescription(b.OrderID),
			Status:      market.TxConfirmed,
		})
		b.WalletMoves = append(b.WalletMoves, WalletMove{
			UserID:         buyer.ID,
			AvailableDelta: -split.WalletApplied,
		})
	}

	for _, line := range lines {
		p, ok := live[line.ProductID]
		if !ok {
			return nil, market.ErrProductNotFound
		}
		lineTotal := p.PriceCents * int64(line.Quantity)
		productID := p.ID

		pair := market.OrderRecord{
			BuyerID:     buyer.ID,
			SellerID:    p.OwnerID,
			ProductID:   p.ID,
			ProductName: p.Name,
			PriceCents:  p.PriceCents,
			Quantity:    line.Quantity,
			Size:        line.Size,
			IsVerified:  verified,
		}
		purchase, sale := pair, pair
		purchase.ID, purchase.OwnerID, purchase.Kind = uuid.NewString(), buyer.ID, market.RecordPurchase
		sale.ID, sale.OwnerID, sale.Kind = uuid.NewString(), p.OwnerID, market.RecordSale
		b.Records = append(b.Records, purchase, sale)

		b.Stock = append(b.Stock, StockDecrement{ProductID: p.ID, Qty: line.Quantity})

		b.WalletMoves = append(b.WalletMoves, WalletMove{
			UserID:       p.OwnerID,
			PendingDelta: lineTotal,
		})
		b.Ledger = append(b.Ledger, market.WalletTransaction{
			ID:               uuid.NewString(),
			UserID:           p.OwnerID,
			Type:             market.TxSale,
			AmountCents:      lineTotal,
			Description:      fmt.Sprintf("Sale of %q x%d", p.Name, line.Quantity),
			Status:           market.TxPending,
			RelatedProductID: &productID,
		})

		if verified {
			b.Notifications = append(b.Notifications, market.Notification{
				ID:      uuid.NewString(),
				UserID:  p.OwnerID,
				Message: fmt.Sprintf("%q was ordered with verified delivery. Confirm the shipment from your sales page.", p.Name),
				Link:    "/dashboard/sales",
			})
		}
	}

	return b, nil
}

// NotifiedUserIDs lists the sellers a notification was written for.
func (b *Batch) NotifiedUserIDs() []string {
	out := make([]string, 0, len(b.Notifications))
	for _, n := range b.Notifications {
		out = append(out, n.UserID)
	}
	return out
}
