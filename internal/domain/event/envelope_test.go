package event

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/sj9102001/workly/internal/domain/entity"
)

func testRecord(payload string) entity.OutboxEvent {
	return entity.OutboxEvent{
		ID:            uuid.New(),
		Topic:         "org.events",
		EventType:     string(TypeOrgMemberInvited),
		AggregateType: string(AggregateOrgInvitation),
		AggregateID:   uuid.New(),
		OrgID:         uuid.New(),
		PartitionKey:  "org-1",
		Payload:       datatypes.JSON(payload),
		Status:        entity.OutboxStatusPending,
		CreatedAt:     time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := `{"invited_email":"a@x.com","invited_role":"MEMBER","nested":{"k":[1,2,3]}}`
	rec := testRecord(payload)

	data, err := Encode(rec)
	require.NoError(t, err)

	env, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, rec.ID.String(), env.EventID)
	assert.Equal(t, rec.EventType, env.EventType)
	assert.Equal(t, rec.OrgID.String(), env.OrgID)
	assert.Equal(t, rec.AggregateType, env.AggregateType)
	assert.Equal(t, rec.AggregateID.String(), env.AggregateID)
	assert.True(t, rec.CreatedAt.Equal(env.Timestamp))
	assert.JSONEq(t, payload, string(env.Payload))
}

func TestEncodeIsDeterministic(t *testing.T) {
	rec := testRecord(`{"a":1}`)

	first, err := Encode(rec)
	require.NoError(t, err)
	second, err := Encode(rec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncodeRejectsInvalidPayload(t *testing.T) {
	rec := testRecord(`{not json`)

	_, err := Encode(rec)
	assert.Error(t, err)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `{{{`,
		"wrong shape":       `[1,2,3]`,
		"missing eventType": `{"orgId":"x","payload":{}}`,
		"empty eventType":   `{"eventType":"","payload":{}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedEnvelope))
		})
	}
}

func TestDecodeTolerableInput(t *testing.T) {
	// Null or absent payloads normalize to an empty object, and unknown
	// fields from newer producers are ignored.
	env, err := Decode([]byte(`{"eventType":"ORG_CREATED","payload":null,"futureField":42}`))
	require.NoError(t, err)
	assert.Equal(t, "ORG_CREATED", env.EventType)
	assert.JSONEq(t, `{}`, string(env.Payload))

	env, err = Decode([]byte(`{"eventType":"ORG_CREATED"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(env.Payload))
}

func TestPayloadRoundTripsArbitraryStructure(t *testing.T) {
	type inner struct {
		A string         `json:"a"`
		B []int          `json:"b"`
		C map[string]any `json:"c"`
	}
	original := inner{A: "x", B: []int{3, 1, 2}, C: map[string]any{"nested": true}}
	raw, err := json.Marshal(original)
	require.NoError(t, err)

	data, err := Encode(testRecord(string(raw)))
	require.NoError(t, err)
	env, err := Decode(data)
	require.NoError(t, err)

	var got inner
	require.NoError(t, json.Unmarshal(env.Payload, &got))
	assert.Equal(t, original, got)
}
