package settlement

import (
	"testing"

	"github.com/mahdisharifi109/Rewear-sub000/internal/market"
)

func testBuyer() *market.User {
	return &market.User{
		ID:                   "buyer-1",
		Status:               market.AccountActive,
		WalletAvailableCents: 300,
	}
}

func testOrder() ([]market.CartLine, map[string]*market.Product) {
	lines := []market.CartLine{
		{ProductID: "p1", Quantity: 1, Size: "M"},
		{ProductID: "p2", Quantity: 2},
	}
	live := map[string]*market.Product{
		"p1": {ID: "p1", OwnerID: "seller-1", Name: "Denim jacket", PriceCents: 400, Quantity: 1, Status: market.ProductAvailable},
		"p2": {ID: "p2", OwnerID: "seller-2", Name: "Wool scarf", PriceCents: 300, Quantity: 5, Status: market.ProductAvailable},
	}
	return lines, live
}

func TestBuildBatchBuyerDebitConservation(t *testing.T) {
	lines, live := testOrder()
	split := ComputeSplit(1000, 300, true)

	b, err := BuildBatch(testBuyer(), lines, live, split, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var buyerSum int64
	var buyerEntries int
	for _, e := range b.Ledger {
		if e.UserID == "buyer-1" {
			buyerSum += e.AmountCents
			buyerEntries++
			if e.Status != market.TxConfirmed || e.Type != market.TxPurchase {
				t.Fatalf("buyer debit must be a confirmed purchase, got %+v", e)
			}
		}
	}
	if buyerEntries != 1 {
		t.Fatalf("want exactly one buyer ledger entry, got %d", buyerEntries)
	}
	if buyerSum != -300 {
		t.Fatalf("buyer ledger sum = %d, want -300", buyerSum)
	}
}

func TestBuildBatchNoDebitWithoutWallet(t *testing.T) {
	lines, live := testOrder()
	split := ComputeSplit(1000, 300, false)

	b, err := BuildBatch(testBuyer(), lines, live, split, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, e := range b.Ledger {
		if e.UserID == "buyer-1" {
			t.Fatalf("no buyer ledger entry expected, got %+v", e)
		}
	}
	for _, m := range b.WalletMoves {
		if m.UserID == "buyer-1" {
			t.Fatalf("buyer wallet must be untouched, got %+v", m)
		}
	}
	if b.Charged != 1000 {
		t.Fatalf("full total should be charged, got %d", b.Charged)
	}
}

func TestBuildBatchSellerCredits(t *testing.T) {
	lines, live := testOrder()
	b, err := BuildBatch(testBuyer(), lines, live, Split{Charged: 1000}, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	credits := map[string]int64{}
	for _, m := range b.WalletMoves {
		if m.AvailableDelta != 0 && m.UserID != "buyer-1" {
			t.Fatalf("seller proceeds go to pending, not available: %+v", m)
		}
		credits[m.UserID] += m.PendingDelta
	}
	if credits["seller-1"] != 400 || credits["seller-2"] != 600 {
		t.Fatalf("pending credits wrong: %+v", credits)
	}

	for _, e := range b.Ledger {
		if e.Type != market.TxSale {
			continue
		}
		if e.Status != market.TxPending {
			t.Fatalf("sale entries start pending, got %+v", e)
		}
		if e.RelatedProductID == nil {
			t.Fatalf("sale entry must reference its product: %+v", e)
		}
	}
}

func TestBuildBatchRecordPairs(t *testing.T) {
	lines, live := testOrder()
	b, err := BuildBatch(testBuyer(), lines, live, Split{Charged: 1000}, true)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(b.Records) != 4 {
		t.Fatalf("two lines make two record pairs, got %d records", len(b.Records))
	}
	for i := 0; i < len(b.Records); i += 2 {
		purchase, sale := b.Records[i], b.Records[i+1]
		if purchase.Kind != market.RecordPurchase || sale.Kind != market.RecordSale {
			t.Fatalf("pair order wrong: %+v / %+v", purchase.Kind, sale.Kind)
		}
		if purchase.OwnerID != "buyer-1" || sale.OwnerID != sale.SellerID {
			t.Fatalf("records filed under wrong histories: %+v / %+v", purchase, sale)
		}
		if purchase.ProductID != sale.ProductID || purchase.PriceCents != sale.PriceCents || purchase.Quantity != sale.Quantity {
			t.Fatalf("pair payloads must match: %+v / %+v", purchase, sale)
		}
		if !purchase.IsVerified {
			t.Fatalf("verified flag should carry through")
		}
	}
}

func TestBuildBatchStockDecrements(t *testing.T) {
	lines, live := testOrder()
	b, err := BuildBatch(testBuyer(), lines, live, Split{Charged: 1000}, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(b.Stock) != 2 {
		t.Fatalf("one decrement per line, got %d", len(b.Stock))
	}
	if b.Stock[0].ProductID != "p1" || b.Stock[0].Qty != 1 {
		t.Fatalf("unexpected decrement: %+v", b.Stock[0])
	}
}

func TestBuildBatchNotificationsOnlyWhenVerified(t *testing.T) {
	lines, live := testOrder()

	b, _ := BuildBatch(testBuyer(), lines, live, Split{Charged: 1000}, false)
	if len(b.Notifications) != 0 {
		t.Fatalf("no notifications without verified delivery, got %d", len(b.Notifications))
	}

	b, _ = BuildBatch(testBuyer(), lines, live, Split{Charged: 1000}, true)
	if len(b.Notifications) != 2 {
		t.Fatalf("one notification per seller line, got %d", len(b.Notifications))
	}
	if got := b.NotifiedUserIDs(); len(got) != 2 || got[0] != "seller-1" || got[1] != "seller-2" {
		t.Fatalf("notified sellers wrong: %v", got)
	}
}
