package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/supervisor-console/internal/api/dto"
	"github.com/spec-kit/supervisor-console/internal/api/http/handlers"
	"github.com/spec-kit/supervisor-console/internal/backend"
	"github.com/spec-kit/supervisor-console/internal/config"
	"github.com/spec-kit/supervisor-console/internal/domain"
	"github.com/spec-kit/supervisor-console/internal/draft"
	"github.com/spec-kit/supervisor-console/internal/events"
	"github.com/spec-kit/supervisor-console/internal/observability"
	"github.com/spec-kit/supervisor-console/internal/service"
	"github.com/spec-kit/supervisor-console/internal/worker"
)

type fakeBackend struct {
	pending   []domain.RequestRecord
	resolved  []domain.ResolvedRecord
	submitErr error
}

func (f *fakeBackend) FetchPending(ctx context.Context) ([]domain.RequestRecord, error) {
	return f.pending, nil
}

func (f *fakeBackend) FetchResolved(ctx context.Context) ([]domain.ResolvedRecord, error) {
	return f.resolved, nil
}

func (f *fakeBackend) SubmitAnswer(ctx context.Context, requestID, answer string) error {
	return f.submitErr
}

func (f *fakeBackend) Ping(ctx context.Context) error { return nil }

var _ backend.Client = (*fakeBackend)(nil)

func newTestApp(t *testing.T, fake *fakeBackend) (*fiber.App, *service.PendingQueueService) {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	drafts := draft.NewStore()

	queueService := service.NewPendingQueueService(service.PendingQueueDependencies{
		Backend:    fake,
		Drafts:     drafts,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
		Strategy:   config.SubmitStrategyOptimistic,
	})
	historyService := service.NewHistoryService(fake, dispatcher, logger, metrics)
	noticeService := service.NewNoticeService(dispatcher, logger, 10)
	worker.StartNoticeWorker(noticeService)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("supervisor-console", "test", fake),
		Queue:   handlers.NewQueueHandler(queueService),
		History: handlers.NewHistoryHandler(historyService),
		Notices: handlers.NewNoticesHandler(noticeService),
	})
	return app, queueService
}

func TestGetPendingReturnsQueueWithDrafts(t *testing.T) {
	fake := &fakeBackend{pending: []domain.RequestRecord{
		{ID: "1", User: "ada", Query: "When do you open?", RequestedAt: time.Now().UTC(), Status: domain.RequestStatusPending},
	}}
	app, queueService := newTestApp(t, fake)
	require.NoError(t, queueService.LoadPending(context.Background()))
	queueService.SetDraft(context.Background(), "1", "We open at 9am.")

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/queue/pending", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var body dto.QueueResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "1", body.Data[0].ID)
	assert.True(t, body.Data[0].Actionable)
	assert.Equal(t, "We open at 9am.", body.Data[0].Draft)
	assert.False(t, body.Empty)
}

func TestGetPendingEmptyAfterLoadSetsEmptyFlag(t *testing.T) {
	fake := &fakeBackend{pending: []domain.RequestRecord{}}
	app, queueService := newTestApp(t, fake)
	require.NoError(t, queueService.LoadPending(context.Background()))

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/queue/pending", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.QueueResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Data)
	assert.True(t, body.Empty, "empty state is explicit, not a silent empty list")
}

func TestSubmitAnswerEndpointValidatesDraft(t *testing.T) {
	fake := &fakeBackend{pending: []domain.RequestRecord{
		{ID: "1", User: "ada", Query: "When do you open?", Status: domain.RequestStatusPending},
	}}
	app, queueService := newTestApp(t, fake)
	require.NoError(t, queueService.LoadPending(context.Background()))

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodPost, "/queue/requests/1/answer", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
}

func TestSubmitAnswerEndpointRemovesRecordOnSuccess(t *testing.T) {
	fake := &fakeBackend{pending: []domain.RequestRecord{
		{ID: "1", User: "ada", Query: "When do you open?", Status: domain.RequestStatusPending},
		{ID: "2", User: "bea", Query: "Do you deliver?", Status: domain.RequestStatusPending},
	}}
	app, queueService := newTestApp(t, fake)
	require.NoError(t, queueService.LoadPending(context.Background()))

	draftReq := httptest.NewRequest(nethttp.MethodPut, "/queue/requests/1/draft",
		strings.NewReader(`{"text":"We open at 9am."}`))
	draftReq.Header.Set("Content-Type", "application/json")
	draftResp, err := app.Test(draftReq)
	require.NoError(t, err)
	draftResp.Body.Close()
	require.Equal(t, nethttp.StatusNoContent, draftResp.StatusCode)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodPost, "/queue/requests/1/answer", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var body dto.QueueResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "2", body.Data[0].ID)
}

func TestSubmitAnswerEndpointSurfacesSubmissionFailure(t *testing.T) {
	fake := &fakeBackend{
		pending: []domain.RequestRecord{
			{ID: "1", User: "ada", Query: "When do you open?", Status: domain.RequestStatusPending},
		},
		submitErr: errors.New("backend returned status 500"),
	}
	app, queueService := newTestApp(t, fake)
	require.NoError(t, queueService.LoadPending(context.Background()))
	queueService.SetDraft(context.Background(), "1", "We open at 9am.")

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodPost, "/queue/requests/1/answer", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, nethttp.StatusBadGateway, resp.StatusCode)

	// the notice feed carries the user-facing failure
	noticesResp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/notices", nil))
	require.NoError(t, err)
	defer noticesResp.Body.Close()
	var notices struct {
		Data []service.Notice `json:"data"`
	}
	require.NoError(t, json.NewDecoder(noticesResp.Body).Decode(&notices))
	require.NotEmpty(t, notices.Data)
	assert.Equal(t, "1", notices.Data[0].RequestID)
}

func TestGetResolvedReturnsHistory(t *testing.T) {
	fake := &fakeBackend{resolved: []domain.ResolvedRecord{
		{ID: "4", CustomerID: "ada", Question: "When do you open?", SupervisorAnswer: "We open at 9am.", AnsweredAt: time.Now().UTC()},
	}}
	app, _ := newTestApp(t, fake)

	refreshResp, err := app.Test(httptest.NewRequest(nethttp.MethodPost, "/queue/resolved/refresh", nil))
	require.NoError(t, err)
	refreshResp.Body.Close()
	require.Equal(t, nethttp.StatusOK, refreshResp.StatusCode)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/queue/resolved", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.HistoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "We open at 9am.", body.Data[0].SupervisorAnswer)
	assert.False(t, body.Empty)
}
