// bus.go
package bus

import (
	"strings"
	"sync"
)

// Topic is a slash-joined path, e.g. "state/time".
type Topic string

// T builds a topic from path elements.
func T(parts ...string) Topic { return Topic(strings.Join(parts, "/")) }

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	topic Topic
	ch    chan *Message
	bus   *Bus
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.bus.unsubscribe(s) }

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

// Bus is a small in-process pub/sub hub. The control loop publishes
// retained device state on it; observers (boardtest, the simulator)
// subscribe. Exact-match topics only.
type Bus struct {
	mu       sync.RWMutex
	subs     map[Topic][]*Subscription
	retained map[Topic]*Message
	qLen     int
}

// New creates a bus with the given per-subscription queue length.
func New(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Bus{
		subs:     map[Topic][]*Subscription{},
		retained: map[Topic]*Message{},
		qLen:     queueLen,
	}
}

// Subscribe registers for a topic. A retained message, if present, is
// delivered immediately.
func (b *Bus) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{topic: topic, ch: make(chan *Message, b.qLen), bus: b}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], sub)
	if m := b.retained[topic]; m != nil {
		sub.ch <- m
	}
	return sub
}

// Publish delivers msg to all current subscribers of its topic. A full
// subscriber queue drops its oldest message rather than blocking the
// publisher. A retained message with nil payload clears the retention.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs[msg.Topic] {
		select {
		case sub.ch <- msg:
		default:
			<-sub.ch
			sub.ch <- msg
		}
	}

	if msg.Retained {
		if msg.Payload == nil {
			delete(b.retained, msg.Topic)
		} else {
			b.retained[msg.Topic] = msg
		}
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[sub.topic]
	for i, s := range list {
		if s == sub {
			b.subs[sub.topic] = append(list[:i], list[i+1:]...)
			break
		}
	}
}
