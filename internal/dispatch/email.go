package dispatch

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/sj9102001/workly/internal/domain/event"
)

// EmailDispatcher is the second consumer group on the org events stream. It
// only reacts to ORG_MEMBER_INVITED; everything else is dropped. Actual SMTP
// delivery is out of scope, so the send is a structured log line carrying
// everything a mailer would need.
type EmailDispatcher struct {
	log *logrus.Logger
}

func NewEmailDispatcher(log *logrus.Logger) *EmailDispatcher {
	return &EmailDispatcher{log: log}
}

// Dispatch never fails the message; see Router.Dispatch for the reasoning.
func (d *EmailDispatcher) Dispatch(_ context.Context, data []byte) {
	env, err := event.Decode(data)
	if err != nil {
		if errors.Is(err, event.ErrMalformedEnvelope) {
			d.log.WithError(err).Warn("dropping malformed event")
			return
		}
		d.log.WithError(err).Error("decode event failed")
		return
	}
	if event.Type(env.EventType) != event.TypeOrgMemberInvited {
		return
	}

	var p event.MemberInvitedPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		d.log.WithError(err).Warn("dropping invite event with bad payload")
		return
	}

	d.log.WithFields(logrus.Fields{
		"event_id":   env.EventID,
		"to":         p.InvitedEmail,
		"org_id":     p.OrganizationID,
		"role":       p.InvitedRole,
		"accept_url": "/invite/" + p.InviteToken,
		"expires_at": p.ExpiresAt.UTC().Format(expiresFormat),
	}).Info("invite email sent")
}
