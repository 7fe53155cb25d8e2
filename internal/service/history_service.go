package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/supervisor-console/internal/backend"
	"github.com/spec-kit/supervisor-console/internal/domain"
	"github.com/spec-kit/supervisor-console/internal/events"
	"github.com/spec-kit/supervisor-console/internal/observability"
	apperrors "github.com/spec-kit/supervisor-console/pkg/util"
)

// HistoryService projects the backend's resolved queue into a locally cached,
// re-renderable sequence. It has no mutation operations and never touches
// pending state.
type HistoryService struct {
	backend    backend.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics

	mu       sync.Mutex
	resolved []domain.ResolvedRecord
	loading  bool
	loaded   bool
	loadSeq  uint64
}

// HistorySnapshot is a point-in-time copy of the resolved queue for
// rendering. Loaded with an empty Records slice drives the explicit
// empty-state indicator.
type HistorySnapshot struct {
	Records []domain.ResolvedRecord
	Loading bool
	Loaded  bool
}

// NewHistoryService constructs the service.
func NewHistoryService(client backend.Client, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *HistoryService {
	return &HistoryService{
		backend:    client,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// LoadResolved replaces the local resolved list with the backend's ordered
// sequence. On failure prior data is retained. The loading flag settles
// exactly once per call; a response that settles after a newer load was
// issued is discarded.
func (s *HistoryService) LoadResolved(ctx context.Context) error {
	s.mu.Lock()
	s.loadSeq++
	token := s.loadSeq
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	records, err := s.backend.FetchResolved(ctx)
	if err != nil {
		s.metrics.RecordQueueOp("load_resolved", false)
		s.logger.Warn("failed to load resolved requests", zap.Error(err))
		s.publishEvent(ctx, events.Event{
			Type:    events.EventHistoryFailed,
			Payload: events.LoadFailedPayload{Reason: err.Error()},
		})
		return apperrors.NewTransientFetchError("resolved requests", err)
	}

	s.mu.Lock()
	if token != s.loadSeq {
		s.mu.Unlock()
		s.logger.Debug("discarding stale resolved load", zap.Uint64("token", token))
		return nil
	}
	s.resolved = records
	s.loaded = true
	s.mu.Unlock()

	s.metrics.RecordQueueOp("load_resolved", true)
	s.publishEvent(ctx, events.Event{
		Type:    events.EventHistoryLoaded,
		Payload: events.QueueLoadedPayload{Count: len(records)},
	})
	return nil
}

// Snapshot returns a copy of the current resolved queue state.
func (s *HistoryService) Snapshot() HistorySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]domain.ResolvedRecord, len(s.resolved))
	copy(records, s.resolved)
	return HistorySnapshot{Records: records, Loading: s.loading, Loaded: s.loaded}
}

func (s *HistoryService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
