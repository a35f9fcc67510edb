package email

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
)

const publishTimeout = 5 * time.Second

// QueueTransport publishes messages as JSON jobs on a durable queue for cmd/mailer to deliver.
type QueueTransport struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   logger.Logger
}

// DialQueue connects to the broker and declares the queue.
func DialQueue(url, queue string, log logger.Logger) (*QueueTransport, error) {
	conn, ch, err := openChannel(url, queue)
	if err != nil {
		return nil, err
	}
	return &QueueTransport{conn: conn, ch: ch, queue: queue, log: log}, nil
}

func openChannel(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return conn, ch, nil
}

func (t *QueueTransport) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	t.mu.Lock()
	defer t.mu.Unlock()
	err = t.ch.PublishWithContext(ctx,
		"",      // default exchange
		t.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", t.queue, err)
	}
	t.log.Debug("email job queued", "queue", t.queue, "subject", msg.Subject)
	return nil
}

func (t *QueueTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ch.Close(); err != nil {
		t.conn.Close()
		return err
	}
	return t.conn.Close()
}
