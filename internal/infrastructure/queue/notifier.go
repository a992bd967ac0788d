// Package queue delivers notifications asynchronously through a fixed set
// of sharded workers, so delivery never blocks the mutation that produced
// the notification.
package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Notifier routes notifications to workers by consistent hashing on the
// recipient id, so one recipient's notifications arrive in order.
type Notifier struct {
	workers []chan domain.Notification
	repo    ports.NotificationRepository
	log     zerolog.Logger
}

// NewNotifier creates a Notifier with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewNotifier(numWorkers int, repo ports.NotificationRepository, log zerolog.Logger) *Notifier {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	n := &Notifier{
		workers: make([]chan domain.Notification, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range n.workers {
		n.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return n
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) {
	for i, ch := range n.workers {
		go n.runWorker(ctx, i, ch)
	}
}

// Success reports a successful mutation outcome to recipientID.
func (n *Notifier) Success(recipientID, message string) {
	n.enqueue(recipientID, domain.NotifySuccess, message)
}

// Error reports a failed mutation outcome to recipientID.
func (n *Notifier) Error(recipientID, message string) {
	n.enqueue(recipientID, domain.NotifyError, message)
}

// Info reports an informational event to recipientID.
func (n *Notifier) Info(recipientID, message string) {
	n.enqueue(recipientID, domain.NotifyInfo, message)
}

// enqueue is best-effort: when the shard's buffer is full the notification
// is dropped with a warning rather than blocking the caller.
func (n *Notifier) enqueue(recipientID string, level domain.NotificationLevel, message string) {
	notif := domain.Notification{
		RecipientID: recipientID,
		Level:       level,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}
	select {
	case n.workers[n.shardIndex(recipientID)] <- notif:
	default:
		n.log.Warn().Str("recipient", recipientID).Msg("notification queue full, dropping")
	}
}

// shardIndex maps a recipient id deterministically to a worker index.
func (n *Notifier) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32() % uint32(len(n.workers)))
}

func (n *Notifier) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case notif, ok := <-ch:
			if !ok {
				return
			}
			if err := n.repo.Insert(ctx, &notif); err != nil {
				n.log.Error().Err(err).
					Str("recipient", notif.RecipientID).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			n.log.Debug().
				Str("recipient", notif.RecipientID).
				Str("level", string(notif.Level)).
				Msg("notification delivered")
		}
	}
}
