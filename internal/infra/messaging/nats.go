package messaging

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/sj9102001/workly/internal/config"
)

// PartitionKeyHeader carries the producer-side partition key so consumers can
// observe the ordering domain an event belongs to.
const PartitionKeyHeader = "Workly-Partition-Key"

type NATSClient struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	cfg  config.NATS
}

func NewNATS(ctx context.Context, cfg config.NATS) (*NATSClient, error) {
	if cfg.URL == "" {
		return nil, errors.New("nats: url is required")
	}
	if cfg.Stream == "" || cfg.OrgEventsSubject == "" {
		return nil, errors.New("nats: stream and org_events_subject are required")
	}

	conn, err := nats.Connect(cfg.URL, nats.Name("workly-backend"))
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ensureStream(ctx, js, cfg); err != nil {
		conn.Close()
		return nil, err
	}

	return &NATSClient{conn: conn, js: js, cfg: cfg}, nil
}

func (c *NATSClient) Close() {
	if c == nil || c.conn == nil {
		return
	}
	c.conn.Close()
}

func (c *NATSClient) JetStream() nats.JetStreamContext {
	if c == nil {
		return nil
	}
	return c.js
}

// Publish sends one message and waits for the JetStream ack. The msgID is set
// as Nats-Msg-Id, so a republished record is deduplicated by the server
// within its dedup window.
func (c *NATSClient) Publish(ctx context.Context, subject string, payload []byte, msgID, partitionKey string) error {
	if c == nil || c.js == nil {
		return errors.New("nats: jetstream not initialized")
	}
	msg := nats.NewMsg(subject)
	msg.Data = payload
	if msgID != "" {
		msg.Header.Set(nats.MsgIdHdr, msgID)
	}
	if partitionKey != "" {
		msg.Header.Set(PartitionKeyHeader, partitionKey)
	}
	_, err := c.js.PublishMsg(msg, nats.Context(ctx))
	return err
}

// PullSubscribe binds a durable pull consumer for the org events subject.
// Each durable is an independent consumer group with its own cursor.
func (c *NATSClient) PullSubscribe(durable string) (*nats.Subscription, error) {
	if c == nil || c.js == nil {
		return nil, errors.New("nats: jetstream not initialized")
	}
	return c.js.PullSubscribe(
		c.cfg.OrgEventsSubject,
		durable,
		nats.BindStream(c.cfg.Stream),
		nats.AckExplicit(),
		nats.AckWait(c.cfg.AckWait),
		nats.MaxAckPending(c.cfg.MaxAckPending),
	)
}

func ensureStream(ctx context.Context, js nats.JetStreamContext, cfg config.NATS) error {
	subjects := []string{cfg.OrgEventsSubject}

	info, err := js.StreamInfo(cfg.Stream, nats.Context(ctx))
	if err == nil {
		if !sameSubjects(info.Config.Subjects, subjects) {
			info.Config.Subjects = subjects
			_, err = js.UpdateStream(&info.Config, nats.Context(ctx))
		}
		return err
	}

	if errors.Is(err, nats.ErrStreamNotFound) {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:      cfg.Stream,
			Subjects:  subjects,
			Storage:   nats.FileStorage,
			Retention: nats.LimitsPolicy,
		}, nats.Context(ctx))
		return err
	}
	return err
}

func sameSubjects(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		if seen[s] == 0 {
			return false
		}
		seen[s]--
	}
	for _, v := range seen {
		if v != 0 {
			return false
		}
	}
	return true
}
