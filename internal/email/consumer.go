package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/DhavalSuthar-24/socialsoccer/pkg/logger"
)

// Consumer drains the mail queue into a transport, normally SMTP. A failed job is requeued once;
// on the second failure it is dropped.
type Consumer struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queue     string
	transport Transport
	log       logger.Logger
}

func NewConsumer(url, queue string, transport Transport, log logger.Logger) (*Consumer, error) {
	conn, ch, err := openChannel(url, queue)
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}
	return &Consumer{conn: conn, ch: ch, queue: queue, transport: transport, log: log}, nil
}

// Run consumes until ctx is done or the broker closes the channel.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx,
		c.queue, // queue
		"",      // consumer
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.log.Info("mailer consuming", "queue", c.queue)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var msg Message
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		c.log.BusinessError("dropping malformed email job", err, "delivery_tag", d.DeliveryTag)
		c.settle(d.Nack(false, false))
		return
	}

	if err := c.transport.Send(ctx, msg); err != nil {
		requeue := !d.Redelivered
		c.log.InternalError("email job failed", err, "subject", msg.Subject, "requeue", requeue)
		c.settle(d.Nack(false, requeue))
		return
	}
	c.settle(d.Ack(false))
}

func (c *Consumer) settle(err error) {
	if err != nil {
		c.log.Error("failed to settle delivery", "error", err)
	}
}

func (c *Consumer) Close() error {
	if err := c.ch.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}
