package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// Defaults applied by NewQueue for non-positive arguments.
const (
	DefaultSize = 20
	DefaultIdle = 30 * time.Minute
)

// Queue keeps a bounded FIFO of notifications per browser client. When a
// client's queue is full the oldest notification is dropped.
type Queue struct {
	size   int
	idle   time.Duration
	log    *slog.Logger
	mu     sync.Mutex
	queues map[string]*clientQueue
	stop   chan struct{}
	once   sync.Once
}

type clientQueue struct {
	items    []Notification
	lastSeen time.Time
}

// NewQueue creates a queue holding up to size notifications per client.
// Queues untouched for idle are evicted by a background goroutine;
// call Stop on shutdown.
func NewQueue(size int, idle time.Duration, logger *slog.Logger) *Queue {
	if size <= 0 {
		size = DefaultSize
	}
	if idle <= 0 {
		idle = DefaultIdle
	}
	q := &Queue{
		size:   size,
		idle:   idle,
		log:    logger.With("service", "notify"),
		queues: make(map[string]*clientQueue),
		stop:   make(chan struct{}),
	}
	go q.cleanup(idle)
	return q
}

// Stop terminates the background cleanup goroutine.
func (q *Queue) Stop() {
	q.once.Do(func() { close(q.stop) })
}

// Notify appends n to the queue of the client found in ctx.
// Notifications for requests without a client ID are dropped.
func (q *Queue) Notify(ctx context.Context, n Notification) {
	clientID, ok := ctxutil.ClientIDFromCtx(ctx)
	if !ok {
		q.log.DebugContext(ctx, "notification dropped: no client id",
			slog.String("level", string(n.Level)),
		)
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	cq, ok := q.queues[clientID]
	if !ok {
		cq = &clientQueue{}
		q.queues[clientID] = cq
	}
	if len(cq.items) >= q.size {
		cq.items = cq.items[len(cq.items)-q.size+1:]
	}
	cq.items = append(cq.items, n)
	cq.lastSeen = time.Now()
}

// Drain returns the client's pending notifications in order and clears them.
func (q *Queue) Drain(clientID string) []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	cq, ok := q.queues[clientID]
	if !ok {
		return nil
	}
	delete(q.queues, clientID)
	return cq.items
}

// Len returns the number of pending notifications for a client.
func (q *Queue) Len(clientID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if cq, ok := q.queues[clientID]; ok {
		return len(cq.items)
	}
	return 0
}

func (q *Queue) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			q.evict(time.Now().Add(-q.idle))
		case <-q.stop:
			return
		}
	}
}

func (q *Queue) evict(before time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for id, cq := range q.queues {
		if cq.lastSeen.Before(before) {
			delete(q.queues, id)
			n++
		}
	}
	return n
}
