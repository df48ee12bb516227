// Package rmq wraps the AMQP client with the small producer/consumer surface
// this service needs for the outage-events queue.
package rmq

import (
	"context"
	"fmt"
	"net/url"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FormatConnectionString builds an amqp:// URL from individual settings.
func FormatConnectionString(host string, port int, vhost, user, password string) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
		url.QueryEscape(user),
		url.QueryEscape(password),
		host,
		port,
		url.PathEscape(vhost),
	)
}

// Producer sends messages to a single durable queue.
type Producer interface {
	Send(ctx context.Context, data []byte) error
}

func NewProducer(conn *amqp.Connection, queueName string) (Producer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}
	return &producer{ch: ch, queue: q.Name}, nil
}

type producer struct {
	ch    *amqp.Channel
	queue string
}

func (p *producer) Send(ctx context.Context, data []byte) error {
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        data,
	})
}

// Consumer receives messages from a single durable queue.
type Consumer interface {
	Recv(ctx context.Context) (<-chan amqp.Delivery, error)
}

func NewConsumer(conn *amqp.Connection, queueName string) (Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}
	return &consumer{ch: ch, queue: q.Name}, nil
}

type consumer struct {
	ch    *amqp.Channel
	queue string
}

func (c *consumer) Recv(ctx context.Context) (<-chan amqp.Delivery, error) {
	deliveries, err := c.ch.Consume(c.queue, "", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to consume from queue %s: %w", c.queue, err)
	}
	// Closing the channel when the context ends closes the delivery channel,
	// unblocking any reader.
	go func() {
		<-ctx.Done()
		_ = c.ch.Close()
	}()
	return deliveries, nil
}
