package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sj9102001/workly/internal/domain/entity"
)

// ErrMalformedEnvelope wraps any consumer-side decode failure. Malformed
// messages are dropped by the router; retrying them cannot succeed.
var ErrMalformedEnvelope = errors.New("event: malformed envelope")

// Envelope is the wire contract between the outbox poller and consumers.
// The format is stable across versions: new fields must be optional.
// EventID was added after v1 so consumers have a transport-level dedup key.
type Envelope struct {
	EventID       string          `json:"eventId,omitempty"`
	EventType     string          `json:"eventType"`
	OrgID         string          `json:"orgId"`
	AggregateType string          `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	Timestamp     time.Time       `json:"timestamp"`
	Payload       json.RawMessage `json:"payload"`
}

// Encode serializes an outbox record into its wire envelope. The payload is
// opaque and round-trips as stored. The timestamp is the record's creation
// time, so encoding the same record always yields the same envelope.
func Encode(rec entity.OutboxEvent) ([]byte, error) {
	if !json.Valid(rec.Payload) {
		return nil, fmt.Errorf("event: record %s has invalid payload json", rec.ID)
	}
	env := Envelope{
		EventID:       rec.ID.String(),
		EventType:     rec.EventType,
		OrgID:         rec.OrgID.String(),
		AggregateType: rec.AggregateType,
		AggregateID:   rec.AggregateID.String(),
		Timestamp:     rec.CreatedAt.UTC(),
		Payload:       json.RawMessage(rec.Payload),
	}
	return json.Marshal(env)
}

// Decode parses a received message into an Envelope. Any failure, including
// a missing event type, is reported as ErrMalformedEnvelope.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.EventType == "" {
		return Envelope{}, fmt.Errorf("%w: missing eventType", ErrMalformedEnvelope)
	}
	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		env.Payload = json.RawMessage("{}")
	}
	return env, nil
}
