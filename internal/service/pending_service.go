package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/supervisor-console/internal/backend"
	"github.com/spec-kit/supervisor-console/internal/config"
	"github.com/spec-kit/supervisor-console/internal/domain"
	"github.com/spec-kit/supervisor-console/internal/draft"
	"github.com/spec-kit/supervisor-console/internal/events"
	"github.com/spec-kit/supervisor-console/internal/observability"
	apperrors "github.com/spec-kit/supervisor-console/pkg/util"
)

// PendingQueueService owns the local view of pending requests and coordinates
// answer submission. It is the sole mutator of that list; the presentation
// side only reads snapshots and invokes the operations below.
type PendingQueueService struct {
	backend    backend.Client
	drafts     *draft.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	strategy   config.SubmitStrategy

	mu      sync.Mutex
	pending []domain.RequestRecord
	loading bool
	loaded  bool
	loadSeq uint64
}

// PendingQueueDependencies bundles collaborators for the pending queue.
type PendingQueueDependencies struct {
	Backend    backend.Client
	Drafts     *draft.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Strategy   config.SubmitStrategy
}

// QueueSnapshot is a point-in-time copy of the pending queue for rendering.
type QueueSnapshot struct {
	Requests []domain.RequestRecord
	Loading  bool
	Loaded   bool
}

// NewPendingQueueService constructs the service.
func NewPendingQueueService(deps PendingQueueDependencies) *PendingQueueService {
	strategy := deps.Strategy
	if strategy == "" {
		strategy = config.SubmitStrategyOptimistic
	}
	return &PendingQueueService{
		backend:    deps.Backend,
		drafts:     deps.Drafts,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		strategy:   strategy,
	}
}

// LoadPending replaces the local pending list with the backend's ordered
// sequence. On failure the previous list is left untouched. The loading flag
// settles exactly once per call regardless of outcome. A call whose response
// settles after a newer load was issued is discarded.
func (s *PendingQueueService) LoadPending(ctx context.Context) error {
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

	records, err := s.backend.FetchPending(ctx)
	if err != nil {
		s.metrics.RecordQueueOp("load_pending", false)
		s.logger.Warn("failed to load pending requests", zap.Error(err))
		s.publishEvent(ctx, events.Event{
			Type:    events.EventQueueLoadFailed,
			Payload: events.LoadFailedPayload{Reason: err.Error()},
		})
		return apperrors.NewTransientFetchError("pending requests", err)
	}

	s.mu.Lock()
	if token != s.loadSeq {
		s.mu.Unlock()
		s.logger.Debug("discarding stale pending load", zap.Uint64("token", token))
		return nil
	}
	s.pending = records
	s.loaded = true
	ids := make([]string, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].ID)
	}
	s.mu.Unlock()

	// Drafts for requests that left the queue are pruned here so the store
	// stays bounded by the queue size.
	s.drafts.Retain(ids)

	s.metrics.RecordQueueOp("load_pending", true)
	s.publishEvent(ctx, events.Event{
		Type:    events.EventQueueLoaded,
		Payload: events.QueueLoadedPayload{Count: len(records)},
	})
	return nil
}

// SetDraft overwrites the draft for a request. Any string is accepted,
// including the empty string; nothing touches the network.
func (s *PendingQueueService) SetDraft(ctx context.Context, id, text string) {
	s.drafts.Set(id, text)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventDraftUpdated,
		RequestID: id,
	})
}

// Draft returns the current draft for a request, or "" when none exists.
func (s *PendingQueueService) Draft(id string) string {
	return s.drafts.Get(id)
}

// SubmitAnswer submits the stored draft for a request. An empty or
// whitespace-only draft is rejected locally without a network call. On
// success the record leaves the local pending list and its draft is cleared;
// on failure both are preserved so no work is lost.
func (s *PendingQueueService) SubmitAnswer(ctx context.Context, id string) error {
	answer := s.drafts.Get(id)
	if strings.TrimSpace(answer) == "" {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventAnswerRejected,
			RequestID: id,
			Payload:   events.AnswerRejectedPayload{Reason: "answer must not be empty"},
		})
		return apperrors.NewValidationError("answer must not be empty", map[string]any{"request_id": id})
	}

	if err := s.backend.SubmitAnswer(ctx, id, answer); err != nil {
		s.metrics.RecordQueueOp("submit_answer", false)
		s.logger.Warn("failed to submit answer", zap.String("request_id", id), zap.Error(err))
		s.publishEvent(ctx, events.Event{
			Type:      events.EventSubmissionFailed,
			RequestID: id,
			Payload:   events.SubmissionFailedPayload{Reason: err.Error()},
		})
		return apperrors.NewSubmissionError(id, err)
	}

	s.mu.Lock()
	filtered := s.pending[:0]
	for _, record := range s.pending {
		if record.ID != id {
			filtered = append(filtered, record)
		}
	}
	s.pending = filtered
	s.mu.Unlock()
	s.drafts.Clear(id)

	s.metrics.RecordQueueOp("submit_answer", true)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventAnswerSubmitted,
		RequestID: id,
		Payload:   events.AnswerSubmittedPayload{AnswerPreview: stringPreview(answer, 120)},
	})

	if s.strategy == config.SubmitStrategyReconcile {
		// The submission already succeeded; a failed re-fetch only delays the
		// refreshed view until the next load.
		if err := s.LoadPending(ctx); err != nil {
			s.logger.Warn("reconcile refresh failed", zap.Error(err))
		}
	}
	return nil
}

// Snapshot returns a copy of the current pending queue state.
func (s *PendingQueueService) Snapshot() QueueSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests := make([]domain.RequestRecord, len(s.pending))
	copy(requests, s.pending)
	return QueueSnapshot{Requests: requests, Loading: s.loading, Loaded: s.loaded}
}

func (s *PendingQueueService) publishEvent(ctx context.Context, event events.Event) {
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

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
