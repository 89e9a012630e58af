package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "PENDING"
	OutboxStatusPublished OutboxStatus = "PUBLISHED"
	OutboxStatusFailed    OutboxStatus = "FAILED"
)

// OutboxEvent is one row of the transactional outbox. Rows are written in the
// same transaction as the domain mutation they describe and drained by the
// poller. Status only moves forward: PENDING -> PUBLISHED, or PENDING (with
// attempts counting up on publish failures) -> FAILED. LockedAt is the
// poller's claim lease; a row whose lease expired becomes claimable again.
type OutboxEvent struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Topic         string         `gorm:"not null"`
	EventType     string         `gorm:"not null;size:100"`
	AggregateType string         `gorm:"not null;size:100"`
	AggregateID   uuid.UUID      `gorm:"type:uuid;not null"`
	OrgID         uuid.UUID      `gorm:"type:uuid;not null"`
	PartitionKey  string         `gorm:"not null;size:200"`
	Payload       datatypes.JSON `gorm:"type:jsonb;not null"`
	Status        OutboxStatus   `gorm:"type:varchar(30);not null;index:idx_outbox_status_created,priority:1"`
	Attempts      int            `gorm:"not null;default:0"`
	LastError     string         `gorm:""`
	LockedAt      *time.Time     `gorm:""`
	PublishedAt   *time.Time     `gorm:""`
	CreatedAt     time.Time      `gorm:"not null;index:idx_outbox_status_created,priority:2"`
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}
