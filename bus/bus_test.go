// bus/bus_test.go
package bus

import (
	"testing"
	"time"
)

func expectPayload(t *testing.T, sub *Subscription, want any) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		if got.Payload != want {
			t.Errorf("expected payload %v, got %v", want, got.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}
}

func expectNoMessage(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case got := <-sub.Channel():
		t.Errorf("unexpected message %v", got.Payload)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBasicPubSub(t *testing.T) {
	b := New(4)
	sub := b.Subscribe(T("state", "time"))

	b.Publish(&Message{Topic: T("state", "time"), Payload: "hello"})
	expectPayload(t, sub, "hello")
}

func TestExactMatchOnly(t *testing.T) {
	b := New(4)
	sub := b.Subscribe(T("state", "time"))

	b.Publish(&Message{Topic: T("state", "date"), Payload: "other"})
	expectNoMessage(t, sub)
}

func TestRetainedMessage(t *testing.T) {
	b := New(2)
	b.Publish(&Message{Topic: T("state", "mode"), Payload: "clock", Retained: true})

	sub := b.Subscribe(T("state", "mode"))
	expectPayload(t, sub, "clock")
}

func TestRetainedCleared(t *testing.T) {
	b := New(2)
	b.Publish(&Message{Topic: T("state", "mode"), Payload: "clock", Retained: true})
	b.Publish(&Message{Topic: T("state", "mode"), Retained: true})

	sub := b.Subscribe(T("state", "mode"))
	expectNoMessage(t, sub)
}

func TestFullQueueDropsOldest(t *testing.T) {
	b := New(2)
	sub := b.Subscribe(T("state", "calc"))

	for i := 0; i < 5; i++ {
		b.Publish(&Message{Topic: T("state", "calc"), Payload: i})
	}
	// Queue length 2: only the newest two survive.
	expectPayload(t, sub, 3)
	expectPayload(t, sub, 4)
	expectNoMessage(t, sub)
}

func TestUnsubscribe(t *testing.T) {
	b := New(4)
	sub := b.Subscribe(T("state", "time"))
	sub.Unsubscribe()

	b.Publish(&Message{Topic: T("state", "time"), Payload: "gone"})
	expectNoMessage(t, sub)
}
