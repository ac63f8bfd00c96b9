package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/streadway/amqp"
)

const queueName = "fitness_events"

// Publisher pushes domain events onto a durable RabbitMQ queue. The backend
// works without a broker; callers treat a nil Publisher as eventing disabled.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s: %w", queueName, err)
	}
	return &Publisher{conn: conn, channel: ch}, nil
}

func (p *Publisher) Publish(_ context.Context, routingKey string, payload any) error {
	if p == nil || p.channel == nil {
		return nil
	}
	body, err := json.Marshal(map[string]any{
		"event":   routingKey,
		"payload": payload,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.channel.Publish("", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close publisher: %v", errs)
	}
	return nil
}
