// Package quota tracks how many analyses an anonymous user has run.
package quota

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/DjordjeVuckovic/newsroom/internal/storage"
)

const DefaultGuestLimit = 2

// Tracker persists the guest analysis counter in a storage.Store.
type Tracker struct {
	store storage.Store

	mu          sync.Mutex
	subscribers map[int]func(count int)
	nextSub     int
}

func NewTracker(store storage.Store) *Tracker {
	return &Tracker{
		store:       store,
		subscribers: make(map[int]func(count int)),
	}
}

// Current returns the persisted counter. Missing or unparsable values count as 0.
func (t *Tracker) Current() int {
	raw, ok := t.store.Get(storage.KeyGuestAnalysisCount)
	if !ok {
		return 0
	}
	return parseCount(raw)
}

func (t *Tracker) Increment() (int, error) {
	var next int
	err := t.store.Update(storage.KeyGuestAnalysisCount, func(old string, ok bool) (string, bool, error) {
		next = 1
		if ok {
			next = parseCount(old) + 1
		}
		return strconv.Itoa(next), false, nil
	})
	if err != nil {
		return 0, err
	}

	slog.Debug("Guest analysis counted", "count", next)
	t.notify(next)
	return next, nil
}

// Reset clears the counter. Called when a user logs in.
func (t *Tracker) Reset() error {
	if err := t.store.Delete(storage.KeyGuestAnalysisCount); err != nil {
		return err
	}
	t.notify(0)
	return nil
}

func (t *Tracker) IsExhausted(limit int) bool {
	return t.Current() >= limit
}

// Subscribe registers fn to receive the counter after every change. The
// returned func removes the subscription.
func (t *Tracker) Subscribe(fn func(count int)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextSub
	t.nextSub++
	t.subscribers[id] = fn

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subscribers, id)
	}
}

func (t *Tracker) notify(count int) {
	t.mu.Lock()
	subs := make([]func(int), 0, len(t.subscribers))
	for _, fn := range t.subscribers {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(count)
	}
}

func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
