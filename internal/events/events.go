// Package events publishes domain events to RabbitMQ. Each event is a
// persistent JSON message on a durable queue.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/logging"
	"github.com/gdg-garage/conference-api/internal/models"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	TypeConferenceCreated   = "conference.created"
	TypeReservationAdmitted = "reservation.admitted"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	OwnerID    string    `json:"ownerId"`
	Owner      string    `json:"owner,omitempty"`
	WebsafeKey string    `json:"websafeKey"`
	Name       string    `json:"name"`
	StartDate  string    `json:"startDate,omitempty"`
	EndDate    string    `json:"endDate,omitempty"`
}

// ConferenceCreated builds the event announcing conf.
func ConferenceCreated(owner *models.Profile, conf *models.Conference, at time.Time) Event {
	f := forms.EncodeConference(conf, owner.DisplayName)
	return Event{
		ID:         uuid.NewString(),
		Type:       TypeConferenceCreated,
		OccurredAt: at.UTC(),
		OwnerID:    owner.ID,
		Owner:      owner.DisplayName,
		WebsafeKey: f.WebsafeKey,
		Name:       f.Name,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
	}
}

// ReservationAdmitted builds the event announcing res.
func ReservationAdmitted(owner *models.Profile, res *models.Reservation, at time.Time) Event {
	f := forms.EncodeReservation(res, owner.DisplayName)
	return Event{
		ID:         uuid.NewString(),
		Type:       TypeReservationAdmitted,
		OccurredAt: at.UTC(),
		OwnerID:    owner.ID,
		Owner:      owner.DisplayName,
		WebsafeKey: f.WebsafeKey,
		Name:       f.Name,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
	}
}

// Publisher sends events to a single queue. A connection is dialled per
// publish; event volume is one message per successful create.
type Publisher struct {
	url   string
	queue string
	now   func() time.Time
}

func NewPublisher(url, queue string) *Publisher {
	return &Publisher{url: url, queue: queue, now: time.Now}
}

func (p *Publisher) NotifyConference(ctx context.Context, owner *models.Profile, conf *models.Conference) error {
	return p.Publish(ctx, ConferenceCreated(owner, conf, p.now()))
}

func (p *Publisher) NotifyReservation(ctx context.Context, owner *models.Profile, res *models.Reservation) error {
	return p.Publish(ctx, ReservationAdmitted(owner, res, p.now()))
}

// Publish declares the queue and publishes ev as a persistent message.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare %s: %w", p.queue, err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Type,
		Timestamp:    ev.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}

	logging.FromContext(ctx).DebugContext(ctx, "event published", "type", ev.Type, "event_id", ev.ID, "queue", p.queue)
	return nil
}
