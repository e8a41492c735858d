package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers a contact event to whoever is listening.
type Publisher interface {
	PublishContactReceived(ctx context.Context, ev ContactReceivedEvent) error
}

// NopPublisher drops events. It is used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishContactReceived(context.Context, ContactReceivedEvent) error { return nil }

// dialTimeout bounds connect plus handshake when the caller's context has
// no deadline of its own.
const dialTimeout = 5 * time.Second

// AMQPPublisher publishes to RabbitMQ, opening a connection per message.
type AMQPPublisher struct {
	url string       // amqp:// or amqps:// broker URL
	log *slog.Logger // debug output only; failures are returned
}

func NewAMQPPublisher(url string, log *slog.Logger) *AMQPPublisher {
	if log == nil {
		log = slog.Default()
	}
	return &AMQPPublisher{url: url, log: log}
}

// dialContext opens the broker connection. The TCP dial and the AMQP
// handshake both give up at ctx's deadline (or after dialTimeout).
func (p *AMQPPublisher) dialContext(ctx context.Context) (*amqp.Connection, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(dialTimeout)
	}
	return amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial: func(network, addr string) (net.Conn, error) {
			d := net.Dialer{Deadline: deadline}
			conn, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			// amqp clears the deadline once the connection is open.
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
			return conn, nil
		},
	})
}

// PublishContactReceived declares the durable queue and publishes ev as a
// persistent JSON message on the default exchange. The whole exchange with
// the broker is bounded by ctx. Errors are returned for the caller to log.
func (p *AMQPPublisher) PublishContactReceived(ctx context.Context, ev ContactReceivedEvent) error {
	conn, err := p.dialContext(ctx)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Same declaration as the consumer so whichever side starts first
	// creates the queue.
	if _, err := ch.QueueDeclare(
		ContactQueueName, // name
		true,             // durable
		false,            // autoDelete
		false,            // exclusive
		false,            // noWait
		nil,              // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive a broker restart
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", ContactQueueName, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	p.log.Debug("contact event published", slog.Uint64("message_id", ev.MessageID))
	return nil
}
