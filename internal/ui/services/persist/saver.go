// Package persist writes selection snapshots to the store, one at a time.
package persist

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"companypicker/internal/domain"
	"companypicker/internal/eventbus"
)

// Persister is the write side of the company store
type Persister interface {
	SaveSelection(ctx context.Context, companies []domain.Company) error
}

type snapshot struct {
	revision uint64
	items    []domain.Company
}

// Saver serializes selection writes. Only the newest pending snapshot is
// kept, so a burst of edits costs at most one write in flight and one queued.
type Saver struct {
	persister Persister
	bus       eventbus.EventBus
	logger    *zap.Logger
	timeout   time.Duration

	mu        sync.Mutex
	pending   *snapshot
	submitted uint64
	closed    bool

	wake        chan struct{}
	quit        chan struct{}
	wg          sync.WaitGroup
	closeOnce   sync.Once
	unsubscribe func()
}

// NewSaver starts the write worker. When bus is non-nil the saver follows
// SelectionChanged events and reports results as SelectionSaved and
// SelectionSaveFailed events.
func NewSaver(p Persister, bus eventbus.EventBus, logger *zap.Logger, timeout time.Duration) *Saver {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Saver{
		persister: p,
		bus:       bus,
		logger:    logger,
		timeout:   timeout,
		wake:      make(chan struct{}, 1),
		quit:      make(chan struct{}),
	}

	if bus != nil {
		s.unsubscribe = bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SelectionChangedEvent); ok {
				s.Submit(ev.Revision, ev.Items)
			}
		})
	}

	s.wg.Add(1)
	go s.run()
	return s
}

// Submit queues a snapshot. Revisions not newer than the last submitted one
// are ignored.
func (s *Saver) Submit(revision uint64, items []domain.Company) {
	s.mu.Lock()
	if s.closed || revision <= s.submitted {
		s.mu.Unlock()
		return
	}
	s.submitted = revision
	s.pending = &snapshot{revision: revision, items: domain.Clone(items)}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Close stops accepting snapshots, writes the pending one if any and
// waits for the worker to exit.
func (s *Saver) Close() {
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.quit)
		s.wg.Wait()
	})
}

func (s *Saver) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.wake:
			s.flush()
		case <-s.quit:
			s.flush()
			return
		}
	}
}

func (s *Saver) flush() {
	s.mu.Lock()
	snap := s.pending
	s.pending = nil
	s.mu.Unlock()

	if snap == nil {
		return
	}
	s.save(snap)
}

func (s *Saver) save(snap *snapshot) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := s.persister.SaveSelection(ctx, snap.items)
	if err != nil {
		s.logger.Error("failed to save selection",
			zap.Uint64("revision", snap.revision),
			zap.Int("count", len(snap.items)),
			zap.Error(err))
		s.publish(eventbus.SelectionSaveFailedEvent{Revision: snap.revision, Err: err})
		return
	}

	s.logger.Debug("selection saved",
		zap.Uint64("revision", snap.revision),
		zap.Int("count", len(snap.items)))
	s.publish(eventbus.SelectionSavedEvent{Revision: snap.revision})
}

func (s *Saver) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
