package database

import (
	"sync"
	"time"

	"golang.org/x/exp/slices"
)

// Subscription fans updated records out to one consumer, scoped to a set of
// page ids. The document store publishes every mutation; only subscribed
// ids reach the channel.
type Subscription interface {
	Close()
	RecordChan() chan Record
	Subscribe(ids []string) (added []string)
	Subscriptions() []string
	Publish(id string, rec Record) bool
}

type subscription struct {
	ids        []string
	quit       chan struct{}
	closed     bool
	closedOnce sync.Once
	ch         chan Record
	sync.RWMutex
}

func NewSubscription(ids []string, ch chan Record) Subscription {
	return &subscription{ids: ids, ch: ch, quit: make(chan struct{})}
}

func (sub *subscription) RecordChan() chan Record {
	return sub.ch
}

func (sub *subscription) Close() {
	sub.closedOnce.Do(func() {
		close(sub.quit)
		sub.Lock()
		sub.closed = true
		close(sub.ch)
		sub.Unlock()
	})
}

func (sub *subscription) Subscribe(ids []string) (added []string) {
	sub.Lock()
	defer sub.Unlock()
	if sub.closed {
		return nil
	}
loop:
	for _, id := range ids {
		for _, idEx := range sub.ids {
			if idEx == id {
				continue loop
			}
		}
		added = append(added, id)
		sub.ids = append(sub.ids, id)
	}
	return
}

func (sub *subscription) Subscriptions() []string {
	sub.RLock()
	defer sub.RUnlock()
	return sub.ids
}

func (sub *subscription) Publish(id string, rec Record) bool {
	sub.RLock()
	defer sub.RUnlock()
	if sub.closed {
		return false
	}
	if !slices.Contains(sub.ids, id) {
		return false
	}

	var total time.Duration
	for {
		select {
		case <-sub.quit:
			return false
		case sub.ch <- rec:
			return true
		case <-time.After(time.Second * 3):
			total += time.Second * 3
			log.Errorf("subscription %p blocked for %.0f seconds, failed to send %s", sub, total.Seconds(), id)
			continue
		}
	}
}
