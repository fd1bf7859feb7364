package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartBookingConsumer connects to RabbitMQ, declares the booking.confirmed
// and booking.cancelled queues and appends each event to logs/booking.log in
// a single-line, human-friendly format. It runs a reconnect loop with backoff
// and never returns under normal operation; malformed messages are rejected
// without requeueing so the server keeps running.
func StartBookingConsumer(url string) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("booking-consumer: set QoS failed: %v", err)
	}

	// Both queues are drained here; leaving cancellations unconsumed would
	// let the durable queue grow without bound.
	for _, queue := range []string{confirmedQueue, cancelledQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", queue, err)
		}
	}

	confirmed, err := ch.Consume(confirmedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume %s: %w", confirmedQueue, err)
	}
	cancelled, err := ch.Consume(cancelledQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume %s: %w", cancelledQueue, err)
	}

	for {
		var (
			d      amqp.Delivery
			ok     bool
			decode func([]byte) (string, error)
		)
		select {
		case d, ok = <-confirmed:
			decode = confirmedLine
		case d, ok = <-cancelled:
			decode = cancelledLine
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}

		line, err := decode(d.Body)
		if err == nil {
			err = appendBookingLog(line)
		}
		if err != nil {
			log.Printf("booking-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
}

func confirmedLine(body []byte) (string, error) {
	var ev BookingConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("unmarshal confirmed: %w", err)
	}
	return fmt.Sprintf("%s confirmed booking=%s room=%q user=%s stay=%s..%s days=%d amount=%.2f",
		ev.ConfirmedAt, ev.BookingID, ev.RoomName, ev.UserID,
		ev.FromDate, ev.ToDate, ev.TotalDays, ev.TotalAmount), nil
}

func cancelledLine(body []byte) (string, error) {
	var ev BookingCancelledEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", fmt.Errorf("unmarshal cancelled: %w", err)
	}
	return fmt.Sprintf("%s cancelled booking=%s room=%s user=%s",
		ev.CancelledAt, ev.BookingID, ev.RoomID, ev.UserID), nil
}

func appendBookingLog(line string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}

	fpath := filepath.Join("logs", "booking.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	return nil
}
