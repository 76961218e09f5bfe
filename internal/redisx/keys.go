package redisx

import "time"

const (
	// Checkout rate limiting: rate:checkout:{client_ip} -> hit count
	KeyRateCheckout = "rate:checkout"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Unread notification counter for the bell: notif:unread:{user_id}
	KeyUnread = "notif:unread:%s"
)

var (
	TTLDedup  = 48 * time.Hour
	TTLUnread = 30 * 24 * time.Hour
)
