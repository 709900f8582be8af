package mq

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"leisure-booking-api/internal/pkg/config"
	"leisure-booking-api/internal/pkg/errs"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var errNotConnected = errs.New("message broker not connected")

// Publisher emits booking lifecycle events to a topic exchange. The broker is
// optional: with no URL configured every publish is a silent no-op, and a
// dropped connection is re-dialed lazily on the next publish. Consumers that
// need guarantees should read the notification_jobs outbox instead.
type Publisher struct {
	cfg config.MQConfig

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg config.MQConfig) *Publisher {
	p := &Publisher{cfg: cfg}
	if cfg.URL != "" {
		if err := p.connect(); err != nil {
			slog.Warn("message broker unavailable at startup", "error", err)
		}
	}
	return p
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return errs.Wrap(err, "failed to dial message broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return errs.Wrap(err, "failed to open channel")
	}
	if err := ch.ExchangeDeclare(p.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return errs.Wrap(err, "failed to declare exchange")
	}

	p.conn = conn
	p.ch = ch
	return nil
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cfg.URL == "" {
		return nil, nil
	}
	if p.ch != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p.ch, nil
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event any) error {
	ch, err := p.channel()
	if err != nil {
		return err
	}
	if ch == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to encode event")
	}

	err = ch.PublishWithContext(ctx, p.cfg.Exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish event")
	}
	return nil
}

type orderEvent struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Reason      string    `json:"reason,omitempty"`
	At          time.Time `json:"at"`
}

func (p *Publisher) PublishOrderBooked(ctx context.Context, orderID uuid.UUID, orderNumber string) error {
	return p.publish(ctx, "order.booked", orderEvent{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		At:          time.Now(),
	})
}

func (p *Publisher) PublishOrderCancelled(ctx context.Context, orderID uuid.UUID, orderNumber, reason string) error {
	return p.publish(ctx, "order.cancelled", orderEvent{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Reason:      reason,
		At:          time.Now(),
	})
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
