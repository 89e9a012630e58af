package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/event"
	"github.com/sj9102001/workly/internal/domain/repository"
)

type fakeStore struct{}

func (fakeStore) Ping(context.Context) error { return nil }
func (fakeStore) Close()                     {}
func (fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	rows    []entity.Notification
	byDedup map[string]bool
	failure error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{byDedup: make(map[string]bool)}
}

func (r *fakeNotificationRepo) CreateIfAbsent(_ context.Context, n entity.Notification) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failure != nil {
		return false, r.failure
	}
	if r.byDedup[n.DedupKey] {
		return false, nil
	}
	r.byDedup[n.DedupKey] = true
	r.rows = append(r.rows, n)
	return true, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, _ int, _ string) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Notification
	for _, n := range r.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(context.Context, uuid.UUID, uuid.UUID) error { return nil }

var _ repository.NotificationRepository = (*fakeNotificationRepo)(nil)

type recordingHandler struct {
	eventType event.Type
	calls     int
	payloads  []string
	err       error
}

func (h *recordingHandler) EventType() event.Type { return h.eventType }
func (h *recordingHandler) Handle(_ context.Context, payload json.RawMessage) error {
	h.calls++
	h.payloads = append(h.payloads, string(payload))
	return h.err
}

func encodeTestEvent(t *testing.T, eventType event.Type, payload string) []byte {
	t.Helper()
	data, err := json.Marshal(event.Envelope{
		EventID:       uuid.NewString(),
		EventType:     string(eventType),
		OrgID:         uuid.NewString(),
		AggregateType: string(event.AggregateOrganization),
		AggregateID:   uuid.NewString(),
		Timestamp:     time.Now().UTC(),
		Payload:       json.RawMessage(payload),
	})
	require.NoError(t, err)
	return data
}

func TestRouterDispatchesByType(t *testing.T) {
	invited := &recordingHandler{eventType: event.TypeOrgMemberInvited}
	commented := &recordingHandler{eventType: event.TypeIssueCommented}
	router, err := NewRouter(fakeStore{}, testLogger(), invited, commented)
	require.NoError(t, err)

	router.Dispatch(context.Background(), encodeTestEvent(t, event.TypeOrgMemberInvited, `{}`))

	assert.Equal(t, 1, invited.calls)
	assert.Equal(t, 0, commented.calls)
}

func TestRouterHandlesMessagesInArrivalOrder(t *testing.T) {
	handler := &recordingHandler{eventType: event.TypeIssueCommented}
	router, err := NewRouter(fakeStore{}, testLogger(), handler)
	require.NoError(t, err)

	// a pull consumer feeds same-partition messages to Dispatch one at a
	// time, in fetch order; the handler must observe that order
	for i := 1; i <= 3; i++ {
		payload := fmt.Sprintf(`{"seq":%d}`, i)
		router.Dispatch(context.Background(), encodeTestEvent(t, event.TypeIssueCommented, payload))
	}

	require.Equal(t, 3, handler.calls)
	assert.Equal(t, []string{`{"seq":1}`, `{"seq":2}`, `{"seq":3}`}, handler.payloads)
}

func TestRouterRejectsDuplicateHandlers(t *testing.T) {
	_, err := NewRouter(fakeStore{}, testLogger(),
		&recordingHandler{eventType: event.TypeOrgMemberInvited},
		&recordingHandler{eventType: event.TypeOrgMemberInvited},
	)
	require.Error(t, err)
}

func TestRouterDropsMalformedAndUnknown(t *testing.T) {
	handler := &recordingHandler{eventType: event.TypeOrgMemberInvited}
	router, err := NewRouter(fakeStore{}, testLogger(), handler)
	require.NoError(t, err)

	router.Dispatch(context.Background(), []byte(`{not json`))
	router.Dispatch(context.Background(), []byte(`{"orgId":"x"}`)) // missing eventType
	router.Dispatch(context.Background(), encodeTestEvent(t, event.TypeOrgCreated, `{}`))

	assert.Equal(t, 0, handler.calls)
}

func TestRouterSwallowsHandlerErrors(t *testing.T) {
	handler := &recordingHandler{
		eventType: event.TypeOrgMemberInvited,
		err:       errors.New("boom"),
	}
	router, err := NewRouter(fakeStore{}, testLogger(), handler)
	require.NoError(t, err)

	// must not panic and must not propagate; the consumer acks regardless
	router.Dispatch(context.Background(), encodeTestEvent(t, event.TypeOrgMemberInvited, `{}`))
	assert.Equal(t, 1, handler.calls)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}
