package rabbitmq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	POST_CREATED_KEY = "post.created"
	POST_DELETED_KEY = "post.deleted"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type MQConn struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// New dials the broker and declares a durable topic exchange to publish post events to.
func New(connString string, exchange string) (*MQConn, error) {
	conn, err := amqp.Dial(connString)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &MQConn{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
	}, nil
}

func (mq *MQConn) Publish(ctx context.Context, routingKey string, body []byte) error {
	return mq.ch.PublishWithContext(ctx, mq.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (mq *MQConn) Close() error {
	if err := mq.ch.Close(); err != nil {
		return err
	}

	return mq.conn.Close()
}

// NopPublisher drops every message. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []byte) error {
	return nil
}
