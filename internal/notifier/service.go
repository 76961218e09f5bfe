// Package notifier keeps the notification bell's unread counters in
// sync with settlement events. The notification rows themselves are
// written inside the settlement batch; this worker only maintains the
// cheap per-user counter the bell polls.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkax "github.com/mahdisharifi109/Rewear-sub000/internal/kafka"
	"github.com/mahdisharifi109/Rewear-sub000/internal/market"
	"github.com/mahdisharifi109/Rewear-sub000/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleSettlementCompleted is the consumer handler. Events are
// deduplicated by event id so redelivery cannot double-count.
func (s *Service) HandleSettlementCompleted(ctx context.Context, m kafkago.Message) error {
	var env market.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != market.EventSettlementCompleted {
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
	exists, err := redisx.Exists(ctx, s.Redis, dkey)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	p, err := kafkax.UnwrapPayload[market.SettlementCompletedPayload](env.Payload)
	if err != nil {
		return err
	}

	for _, userID := range p.NotifiedUserIDs {
		key := fmt.Sprintf(redisx.KeyUnread, userID)
		if err := s.Redis.Incr(ctx, key).Err(); err != nil {
			return err
		}
		_ = s.Redis.Expire(ctx, key, redisx.TTLUnread).Err()
	}

	if err := s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err(); err != nil {
		return err
	}

	slog.Info("settlement notifications counted",
		"service", s.ServiceName, "order_id", p.OrderID, "sellers", len(p.NotifiedUserIDs))
	return nil
}
