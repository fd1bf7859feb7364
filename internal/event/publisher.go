package event

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	confirmedQueue = "booking.confirmed"
	cancelledQueue = "booking.cancelled"
)

// Publisher emits booking events. Implementations never block the booking flow:
// errors are logged and returned so callers can ignore them.
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) error
	PublishBookingCancelled(ctx context.Context, ev BookingCancelledEvent) error
}

// AMQPPublisher publishes events to a RabbitMQ broker. The broker URL is
// injected at construction; a connection is dialed per publish, which keeps
// the implementation robust against broker restarts at the cost of latency
// that only the background dispatcher ever pays.
type AMQPPublisher struct {
	url string
}

// NewAMQPPublisher creates a publisher for the given broker URL.
func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

func (p *AMQPPublisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) error {
	return p.publish(ctx, confirmedQueue, ev)
}

func (p *AMQPPublisher) PublishBookingCancelled(ctx context.Context, ev BookingCancelledEvent) error {
	return p.publish(ctx, cancelledQueue, ev)
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, payload any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish to %s failed: %v", queue, err)
		return err
	}

	return nil
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) error {
	return nil
}

func (NopPublisher) PublishBookingCancelled(ctx context.Context, ev BookingCancelledEvent) error {
	return nil
}
