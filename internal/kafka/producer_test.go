package kafka

import (
	"context"
	"testing"
)

func newIdleProducer() *Producer {
	// No messages are published, so the writer never dials the broker.
	return NewProducer([]string{"localhost:9092"}, "settlement.completed", 8)
}

func TestShutdownCloseThenCancel(t *testing.T) {
	// Close and cancel land nearly together during shutdown; whichever
	// branch the flush loop picks, the inbox must only close once.
	for i := 0; i < 500; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		p := newIdleProducer()
		p.Start(ctx)
		p.Close()
		cancel()
		p.WaitClosed()
	}
}

func TestShutdownCancelThenClose(t *testing.T) {
	for i := 0; i < 500; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		p := newIdleProducer()
		p.Start(ctx)
		cancel()
		p.Close()
		p.WaitClosed()
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := newIdleProducer()
	p.Start(ctx)
	p.Close()
	p.Close()
	p.WaitClosed()
}
