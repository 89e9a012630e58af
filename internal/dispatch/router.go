package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/domain/event"
	"github.com/sj9102001/workly/internal/domain/repository"
)

// Handler consumes one event type. Handle receives the raw envelope payload;
// implementations must be idempotent because the same event can be delivered
// more than once.
type Handler interface {
	EventType() event.Type
	Handle(ctx context.Context, payload json.RawMessage) error
}

// Router fans received messages out to at most one handler per event type.
// Dispatch never fails the message: malformed envelopes and unknown types are
// dropped, handler errors are logged and swallowed. Redelivery cannot fix
// either case, and handler-side dedup makes a lost effect recoverable by the
// next occurrence of the same logical event, not by replaying this one.
type Router struct {
	store    repository.Store
	handlers map[event.Type]Handler
	log      *logrus.Logger
}

func NewRouter(store repository.Store, log *logrus.Logger, handlers ...Handler) (*Router, error) {
	byType := make(map[event.Type]Handler, len(handlers))
	for _, h := range handlers {
		if _, dup := byType[h.EventType()]; dup {
			return nil, fmt.Errorf("dispatch: duplicate handler for %s", h.EventType())
		}
		byType[h.EventType()] = h
	}
	return &Router{store: store, handlers: byType, log: log}, nil
}

// Dispatch processes one received message. It always returns normally so the
// caller can ack unconditionally.
func (r *Router) Dispatch(ctx context.Context, data []byte) {
	env, err := event.Decode(data)
	if err != nil {
		if errors.Is(err, event.ErrMalformedEnvelope) {
			r.log.WithError(err).Warn("dropping malformed event")
			return
		}
		r.log.WithError(err).Error("decode event failed")
		return
	}

	log := r.log.WithFields(logrus.Fields{
		"event_id":   env.EventID,
		"event_type": env.EventType,
		"org_id":     env.OrgID,
	})

	handler, ok := r.handlers[event.Type(env.EventType)]
	if !ok {
		log.Debug("no handler for event type, dropping")
		return
	}

	err = r.store.WithTx(ctx, func(ctx context.Context) error {
		return handler.Handle(ctx, env.Payload)
	})
	if err != nil {
		log.WithError(err).Error("event handler failed")
		return
	}
	log.Info("event handled")
}
