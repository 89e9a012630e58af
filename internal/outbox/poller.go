package outbox

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/domain/entity"
	"github.com/sj9102001/workly/internal/domain/event"
	"github.com/sj9102001/workly/internal/domain/repository"
)

// Publisher delivers one encoded envelope to the broker and returns only
// after the broker acknowledges it. Implementations must be safe to call
// again with the same msgID: the poller retries and may republish a record
// whose ack was lost.
type Publisher interface {
	Publish(ctx context.Context, topic string, data []byte, msgID, partitionKey string) error
}

// Config controls a poller instance. Zero values are replaced by defaults
// from the config package before New is called.
type Config struct {
	BatchSize      int
	PollInterval   time.Duration
	LockTimeout    time.Duration
	PublishTimeout time.Duration
	MaxAttempts    int
}

// Poller drains the outbox: claim a batch, publish each record, then mark it
// PUBLISHED or record the failure. Multiple pollers can run against the same
// table; the claim lease keeps them from publishing the same record twice
// within a lease window.
type Poller struct {
	repo      repository.OutboxRepository
	publisher Publisher
	cfg       Config
	log       *logrus.Logger
}

func NewPoller(repo repository.OutboxRepository, publisher Publisher, cfg Config, log *logrus.Logger) *Poller {
	return &Poller{repo: repo, publisher: publisher, cfg: cfg, log: log}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	p.log.WithFields(logrus.Fields{
		"batch_size":    p.cfg.BatchSize,
		"poll_interval": p.cfg.PollInterval.String(),
		"max_attempts":  p.cfg.MaxAttempts,
	}).Info("outbox poller started")

	for {
		select {
		case <-ctx.Done():
			p.log.Info("outbox poller stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := p.ProcessBatch(ctx); err != nil {
				p.log.WithError(err).Error("outbox batch failed")
			}
		}
	}
}

// ProcessBatch claims and publishes one batch. Per-record failures are
// recorded on the record itself and do not stop the batch; only a claim
// failure is returned.
func (p *Poller) ProcessBatch(ctx context.Context) error {
	records, err := p.repo.Claim(ctx, p.cfg.BatchSize, p.cfg.LockTimeout)
	if err != nil {
		return err
	}
	for _, rec := range records {
		p.publishOne(ctx, rec)
	}
	return nil
}

func (p *Poller) publishOne(ctx context.Context, rec entity.OutboxEvent) {
	log := p.log.WithFields(logrus.Fields{
		"outbox_id":  rec.ID,
		"event_type": rec.EventType,
		"attempts":   rec.Attempts,
	})

	data, err := event.Encode(rec)
	if err != nil {
		// An unencodable record can never succeed; burn its attempts so it
		// reaches FAILED instead of cycling forever.
		log.WithError(err).Error("outbox record not encodable")
		p.markFailed(ctx, rec, err.Error())
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout)
	err = p.publisher.Publish(pubCtx, rec.Topic, data, rec.ID.String(), rec.PartitionKey)
	cancel()
	if err != nil {
		log.WithError(err).Warn("publish failed")
		p.markFailed(ctx, rec, err.Error())
		return
	}

	if err := p.repo.MarkPublished(ctx, rec.ID); err != nil {
		// The message is out; the record will be claimed and republished
		// after its lease expires. The broker dedupes on the message id, and
		// handlers dedupe on their own keys, so the retry is harmless.
		log.WithError(err).Error("mark published failed")
		return
	}
	log.Info("event published")
}

func (p *Poller) markFailed(ctx context.Context, rec entity.OutboxEvent, lastError string) {
	if err := p.repo.MarkFailed(ctx, rec.ID, lastError, p.cfg.MaxAttempts); err != nil {
		p.log.WithError(err).WithField("outbox_id", rec.ID).Error("mark failed failed")
	}
}
