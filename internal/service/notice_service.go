package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/supervisor-console/internal/events"
)

// NoticeLevel classifies user-facing notices.
type NoticeLevel string

const (
	NoticeLevelWarning NoticeLevel = "warning"
	NoticeLevelError   NoticeLevel = "error"
)

// Notice is a user-facing message the presentation side renders until the
// supervisor dismisses it. Notices never trigger retries; every failure
// policy here is "state unchanged, user informed".
type Notice struct {
	ID        string      `json:"id"`
	Level     NoticeLevel `json:"level"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// NoticeService records user-facing notices for failure and warning events.
type NoticeService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	max        int

	mu      sync.Mutex
	notices []Notice
}

// NewNoticeService creates the service. max bounds the feed; the oldest
// notices are dropped first.
func NewNoticeService(dispatcher events.Dispatcher, logger *zap.Logger, max int) *NoticeService {
	if max <= 0 {
		max = 50
	}
	return &NoticeService{
		dispatcher: dispatcher,
		logger:     logger,
		max:        max,
	}
}

// RegisterHandlers subscribes to the events that warrant a user-facing notice.
func (n *NoticeService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventQueueLoadFailed, n.handleLoadFailed)
	n.dispatcher.Subscribe(events.EventHistoryFailed, n.handleLoadFailed)
	n.dispatcher.Subscribe(events.EventAnswerRejected, n.handleAnswerRejected)
	n.dispatcher.Subscribe(events.EventSubmissionFailed, n.handleSubmissionFailed)
}

// List returns the current notices, newest first.
func (n *NoticeService) List() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.notices))
	for i := range n.notices {
		out[len(n.notices)-1-i] = n.notices[i]
	}
	return out
}

// Dismiss removes a notice by id. Dismissing an unknown id is a no-op.
func (n *NoticeService) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.notices {
		if n.notices[i].ID == id {
			n.notices = append(n.notices[:i], n.notices[i+1:]...)
			return
		}
	}
}

func (n *NoticeService) handleLoadFailed(ctx context.Context, event events.Event) error {
	n.logger.Info("QueueLoadFailed", zap.String("event_type", string(event.Type)), zap.Any("payload", event.Payload))
	n.append(Notice{
		Level:   NoticeLevelError,
		Message: "Failed to refresh the request queue. The previous view is still shown.",
	})
	return nil
}

func (n *NoticeService) handleAnswerRejected(ctx context.Context, event events.Event) error {
	n.logger.Info("AnswerRejected", zap.String("request_id", event.RequestID), zap.Any("payload", event.Payload))
	n.append(Notice{
		Level:     NoticeLevelWarning,
		Message:   "Please enter an answer before submitting.",
		RequestID: event.RequestID,
	})
	return nil
}

func (n *NoticeService) handleSubmissionFailed(ctx context.Context, event events.Event) error {
	n.logger.Info("SubmissionFailed", zap.String("request_id", event.RequestID), zap.Any("payload", event.Payload))
	n.append(Notice{
		Level:     NoticeLevelError,
		Message:   "Failed to submit answer. Your draft was kept; please try again.",
		RequestID: event.RequestID,
	})
	return nil
}

func (n *NoticeService) append(notice Notice) {
	notice.ID = uuid.NewString()
	notice.CreatedAt = time.Now()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	if len(n.notices) > n.max {
		n.notices = n.notices[len(n.notices)-n.max:]
	}
}
