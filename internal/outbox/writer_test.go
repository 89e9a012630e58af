package outbox

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/event"
)

func TestWriterEnqueuesPendingRecord(t *testing.T) {
	store := newFakeOutboxStore()
	writer := NewWriter(store, "org.events")

	orgID := uuid.New()
	inviteID := uuid.New()
	payload := map[string]any{
		"invite_id":     inviteID.String(),
		"invited_email": "dana@example.com",
	}

	id, err := writer.Enqueue(
		context.Background(),
		event.TypeOrgMemberInvited,
		orgID,
		event.AggregateOrgInvitation,
		inviteID,
		orgID.String(),
		payload,
	)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	rec := store.get(id)
	assert.Equal(t, "org.events", rec.Topic)
	assert.Equal(t, string(event.TypeOrgMemberInvited), rec.EventType)
	assert.Equal(t, string(event.AggregateOrgInvitation), rec.AggregateType)
	assert.Equal(t, orgID, rec.OrgID)
	assert.Equal(t, inviteID, rec.AggregateID)
	assert.Equal(t, orgID.String(), rec.PartitionKey)
	assert.Equal(t, entity.OutboxStatusPending, rec.Status)
	assert.Zero(t, rec.Attempts)
	assert.Nil(t, rec.PublishedAt)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Payload, &got))
	assert.Equal(t, "dana@example.com", got["invited_email"])
}

func TestWriterRejectsUnmarshalablePayload(t *testing.T) {
	store := newFakeOutboxStore()
	writer := NewWriter(store, "org.events")

	_, err := writer.Enqueue(
		context.Background(),
		event.TypeOrgCreated,
		uuid.New(),
		event.AggregateOrganization,
		uuid.New(),
		"k",
		make(chan int),
	)
	require.Error(t, err)
}
