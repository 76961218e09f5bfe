package market

import (
	"encoding/json"
	"time"
)

const (
	EventSettlementCompleted = "SettlementCompleted"

	TopicSettlementCompleted = "settlement.completed"
)

// Envelope wraps every event on the wire. Payload is type-specific.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type SettledItem struct {
	ProductID string `json:"product_id"`
	SellerID  string `json:"seller_id"`
	Qty       int    `json:"qty"`
	LineCents int64  `json:"line_cents"`
}

type SettlementCompletedPayload struct {
	OrderID            string        `json:"order_id"`
	BuyerID            string        `json:"buyer_id"`
	WalletAppliedCents int64         `json:"wallet_applied_cents"`
	ChargedCents       int64         `json:"charged_cents"`
	Items              []SettledItem `json:"items"`
	NotifiedUserIDs    []string      `json:"notified_user_ids,omitempty"`
}

// PartitionKey keeps every event for one order on one partition so
// consumers see them in order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
