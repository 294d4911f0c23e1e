package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ningi265/quickspin/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Notification event names published to role-scoped channels
const (
	EventNewOrder           = "new-order"
	EventOrderUpdate        = "order-update"
	EventOrderStatusUpdated = "order-status-updated"
	EventOrderAssigned      = "order-assigned"
	EventOrderPickedUp      = "order-picked-up"
	EventQRVerified         = "qr-verified"
)

// AdminChannel is the channel all admin dashboards subscribe to
const AdminChannel = "admin"

// CustomerChannel returns the private channel for a customer
func CustomerChannel(userID uint) string {
	return fmt.Sprintf("customer-%d", userID)
}

// DriverChannel returns the private channel for a driver
func DriverChannel(driverID uint) string {
	return fmt.Sprintf("driver-%d", driverID)
}

// NotificationSink publishes fire-and-forget events to role-scoped
// channels. Delivery is at-most-once with no persistence or replay: a
// disconnected subscriber simply misses the event.
type NotificationSink interface {
	Publish(ctx context.Context, channel, event string, payload interface{}) error
	Close()
}

var notificationSink NotificationSink = NoopSink{}

// GetNotificationSink returns the active sink
func GetNotificationSink() NotificationSink {
	return notificationSink
}

// SetNotificationSink replaces the active sink (wiring and tests)
func SetNotificationSink(sink NotificationSink) {
	notificationSink = sink
}

// Notify publishes through the active sink. Errors are logged and swallowed:
// the order workflow must never depend on the transport being reachable.
func Notify(ctx context.Context, log logger.ILogger, channel, event string, payload interface{}) {
	if err := notificationSink.Publish(ctx, channel, event, payload); err != nil && log != nil {
		log.Warning("notification publish failed",
			logger.String("channel", channel),
			logger.String("event", event),
			logger.Error(err),
		)
	}
}

// envelope is the wire format for published events
type envelope struct {
	Event     string      `json:"event"`
	Channel   string      `json:"channel"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AMQPSink publishes notifications to a RabbitMQ topic exchange using the
// channel name as the routing key
type AMQPSink struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewAMQPSink connects to RabbitMQ and declares the notification exchange
func NewAMQPSink(url, exchange string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPSink{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish sends one event. Transient delivery: notifications are not worth
// surviving a broker restart.
func (s *AMQPSink) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	body, err := json.Marshal(envelope{
		Event:     event,
		Channel:   channel,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.ch.PublishWithContext(ctx,
		s.exchange, // exchange
		channel,    // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Transient,
			ContentType:  "application/json",
			Timestamp:    time.Now(),
			Body:         body,
		})
}

// Close releases the channel and connection
func (s *AMQPSink) Close() {
	if s.ch != nil {
		s.ch.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}

// NoopSink drops every event. Used when no broker is configured.
type NoopSink struct{}

func (NoopSink) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	return nil
}

func (NoopSink) Close() {}
