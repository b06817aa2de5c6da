package eventbus

import (
	"context"
	"testing"
)

type testEvent struct {
	N int
}

func TestPublishSubscribe(t *testing.T) {
	Use(New())
	defer Use(nil)

	var got []int
	unsubscribe := Subscribe(func(ctx context.Context, e testEvent) {
		got = append(got, e.N)
	})

	Publish(context.Background(), testEvent{N: 1})
	Publish(context.Background(), testEvent{N: 2})

	unsubscribe()
	Publish(context.Background(), testEvent{N: 3})

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("handler saw %v, want [1 2]", got)
	}
}

func TestPublishWithoutBus(t *testing.T) {
	Use(nil)
	// Must not panic.
	Publish(context.Background(), testEvent{N: 1})
	unsubscribe := Subscribe(func(ctx context.Context, e testEvent) {})
	unsubscribe()
}
