package store

import (
	"context"
	"time"

	"google.golang.org/api/iterator"

	"github.com/financas-app/backend/internal/models"
	"github.com/financas-app/backend/pkg/logger"
)

// WatchMonth subscribes to a user's transactions for one calendar month.
// The first event carries the full snapshot; every subsequent event carries
// the full recomputed set after a change. Consumers re-run projection and
// aggregation on each event, which are pure and safe to repeat.
//
// The returned cancel func tears down the Firestore listener; the events
// channel is closed afterwards.
func (s *transactionStore) WatchMonth(ctx context.Context, uid string, year int, month time.Month) (<-chan []models.Transaction, context.CancelFunc) {
	first, last := monthRange(year, month)
	query := s.collection(uid).
		Where("date", ">=", first).
		Where("date", "<=", last)

	watchCtx, cancel := context.WithCancel(ctx)
	events := make(chan []models.Transaction)

	go func() {
		defer close(events)
		log := logger.FromContext(ctx)

		snaps := query.Snapshots(watchCtx)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				// Canceled contexts surface here on teardown.
				if watchCtx.Err() == nil && err != iterator.Done {
					log.Error("transaction watch stopped", "error", err)
				}
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				log.Error("transaction watch read failed", "error", err)
				return
			}
			txs, err := decodeTransactions(docs)
			if err != nil {
				log.Error("transaction watch decode failed", "error", err)
				return
			}

			select {
			case events <- txs:
			case <-watchCtx.Done():
				return
			}
		}
	}()

	return events, cancel
}
