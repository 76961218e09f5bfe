package settlement

import "fmt"

// Split is how an order total divides between the buyer's available
// wallet balance and the amount charged to the payment method.
// WalletApplied + Charged always equals the order total.
type Split struct {
	WalletApplied int64
	Charged       int64
}

// ComputeSplit is pure arithmetic: with the wallet enabled it draws
// min(available, total) from the wallet and charges the remainder.
func ComputeSplit(orderTotalCents, walletAvailableCents int64, useWallet bool) Split {
	if !useWallet || walletAvailableCents <= 0 {
		return Split{WalletApplied: 0, Charged: orderTotalCents}
	}
	applied := walletAvailableCents
	if applied > orderTotalCents {
		applied = orderTotalCents
	}
	return Split{WalletApplied: applied, Charged: orderTotalCents - applied}
}

// DebitDescription is the ledger entry text for the wallet draw-down.
func DebitDescription(orderID string) string {
	return fmt.Sprintf("Wallet payment for order %s", orderID)
}
