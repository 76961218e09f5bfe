package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	kafkax "github.com/mahdisharifi109/Rewear-sub000/internal/kafka"
	"github.com/mahdisharifi109/Rewear-sub000/internal/market"
	kafkago "github.com/segmentio/kafka-go"
)

// CheckoutRequest is the settlement input: a buyer's claimed identity,
// the cart snapshot, and the wallet flag. ClientTotalCents is the
// total the client displayed; it is checked against the server-side
// total but never trusted.
type CheckoutRequest struct {
	BuyerID          string
	Lines            []market.CartLine
	UseWallet        bool
	VerifiedDelivery bool
	ClientTotalCents int64
	TraceID          string
}

// Result carries the realized totals back for display.
type Result struct {
	OrderID            string
	WalletAppliedCents int64
	ChargedCents       int64
}

type SessionValidator interface {
	Validate(ctx context.Context, claimedUserID string) (*market.User, error)
}

type Committer interface {
	Commit(ctx context.Context, b *Batch) error
}

// EventPublisher is satisfied by the async kafka producer.
type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Sessions SessionValidator
	Products ProductGetter
	Exec     Committer
	Producer EventPublisher
	Service  string
}

// Settle runs one checkout end to end: authorize, validate stock,
// compute the wallet split, charge the remainder, build the batch and
// commit it atomically. Every step before Commit is read-only, so a
// failure anywhere leaves no partial state.
func (s *Service) Settle(ctx context.Context, req CheckoutRequest) (Result, error) {
	buyer, err := s.Sessions.Validate(ctx, req.BuyerID)
	if err != nil {
		return Result{}, err
	}

	if len(req.Lines) == 0 {
		return Result{}, market.ErrValidation
	}
	for _, l := range req.Lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return Result{}, market.ErrValidation
		}
	}

	live, err := CheckInventory(ctx, s.Products, req.Lines)
	if err != nil {
		return Result{}, err
	}
	for _, l := range req.Lines {
		if live[l.ProductID].OwnerID == buyer.ID {
			return Result{}, market.ErrValidation
		}
	}

	var total int64
	for _, l := range req.Lines {
		p := live[l.ProductID]
		if l.UnitPriceCents != 0 && l.UnitPriceCents != p.PriceCents {
			slog.Warn("cart line carries a stale price, using the live one",
				"product_id", p.ID, "cart_cents", l.UnitPriceCents, "live_cents", p.PriceCents)
		}
		total += p.PriceCents * int64(l.Quantity)
	}
	if req.ClientTotalCents != 0 && req.ClientTotalCents != total {
		slog.Warn("client total disagrees with live prices",
			"buyer_id", buyer.ID, "client_cents", req.ClientTotalCents, "server_cents", total)
	}

	split := ComputeSplit(total, buyer.WalletAvailableCents, req.UseWallet)

	// Payment gateway is out of scope; the charge always succeeds.
	if ok := s.chargeRemainder(ctx, buyer.ID, split.Charged); !ok {
		return Result{}, market.ErrCommit
	}

	batch, err := BuildBatch(buyer, req.Lines, live, split, req.VerifiedDelivery)
	if err != nil {
		return Result{}, err
	}
	if err := s.Exec.Commit(ctx, batch); err != nil {
		return Result{}, err
	}

	s.publishCompleted(batch, req, live)

	return Result{
		OrderID:            batch.OrderID,
		WalletAppliedCents: batch.WalletApplied,
		ChargedCents:       batch.Charged,
	}, nil
}

func (s *Service) chargeRemainder(_ context.Context, _ string, _ int64) bool {
	return true
}

func (s *Service) publishCompleted(b *Batch, req CheckoutRequest, live map[string]*market.Product) {
	if s.Producer == nil {
		return
	}

	items := make([]market.SettledItem, 0, len(req.Lines))
	for _, l := range req.Lines {
		p := live[l.ProductID]
		items = append(items, market.SettledItem{
			ProductID: p.ID,
			SellerID:  p.OwnerID,
			Qty:       l.Quantity,
			LineCents: p.PriceCents * int64(l.Quantity),
		})
	}

	ev := market.Envelope{
		EventID:       uuid.NewString(),
		EventType:     market.EventSettlementCompleted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.Service,
		TraceID:       req.TraceID,
		CorrelationID: b.OrderID,
	}
	ev.Payload = kafkax.MustMarshal(market.SettlementCompletedPayload{
		OrderID:            b.OrderID,
		BuyerID:            b.BuyerID,
		WalletAppliedCents: b.WalletApplied,
		ChargedCents:       b.Charged,
		Items:              items,
		NotifiedUserIDs:    b.NotifiedUserIDs(),
	})

	s.Producer.Publish(market.PartitionKey(b.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(market.EventSettlementCompleted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
