package bot

import (
	"context"
	"sync"
	"time"

	"overwatch-tracker/internal/domain"
)

type waitKey struct {
	userID    string
	channelID string
}

// Waiter hands the next message a user posts in a channel to whoever is
// waiting for it. At most one wait is registered per user and channel; a new
// wait replaces the previous one.
type Waiter struct {
	mu      sync.Mutex
	pending map[waitKey]chan string
}

func NewWaiter() *Waiter {
	return &Waiter{pending: make(map[waitKey]chan string)}
}

// Wait blocks until Deliver is called for the same user and channel, timeout
// elapses or ctx is done. Both cancellation cases return domain.ErrTimeout.
func (w *Waiter) Wait(ctx context.Context, userID, channelID string, timeout time.Duration) (string, error) {
	key := waitKey{userID, channelID}
	ch := make(chan string, 1)

	w.mu.Lock()
	w.pending[key] = ch
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		if w.pending[key] == ch {
			delete(w.pending, key)
		}
		w.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case text := <-ch:
		return text, nil
	case <-ctx.Done():
		return "", domain.ErrTimeout
	}
}

// Deliver reports whether a wait consumed the message.
func (w *Waiter) Deliver(userID, channelID, text string) bool {
	key := waitKey{userID, channelID}

	w.mu.Lock()
	ch, ok := w.pending[key]
	if ok {
		delete(w.pending, key)
	}
	w.mu.Unlock()

	if !ok {
		return false
	}
	ch <- text
	return true
}

func (w *Waiter) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}
