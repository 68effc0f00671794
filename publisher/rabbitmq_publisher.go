package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/golangid/botkit/botshared"
	"github.com/golangid/botkit/tracer"
	"github.com/streadway/amqp"
)

const (
	// RabbitMQDelayHeader header key
	RabbitMQDelayHeader = "x-delay"
)

type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher rabbitmq
type RabbitMQPublisher struct {
	exchange string
	channel  func() (amqpChannel, error)
	close    func() error
}

// NewRabbitMQPublisher constructor, topic of PublisherArgument is the routing key
func NewRabbitMQPublisher(conn *amqp.Connection, exchangeName string) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		exchange: exchangeName,
		channel: func() (amqpChannel, error) {
			return conn.Channel()
		},
		close: conn.Close,
	}
}

// PublishMessage method
func (r *RabbitMQPublisher) PublishMessage(ctx context.Context, args *botshared.PublisherArgument) (err error) {
	trace := tracer.StartTrace(ctx, "rabbitmq:publish_message")
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
		trace.SetError(err)
		trace.Finish()
	}()

	ch, err := r.channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	contentType := args.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	trace.SetTag("exchange", r.exchange)
	trace.SetTag("topic", args.Topic)
	trace.SetTag("key", args.Key)

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  contentType,
		MessageId:    args.Key,
		Body:         payloadOf(args),
		Headers:      amqp.Table(args.Header),
	}

	trace.Log("header", msg.Headers)
	trace.Log("message", msg.Body)

	return ch.Publish(
		r.exchange,
		args.Topic, // routing key
		false,      // mandatory
		false,      // immediate
		msg)
}

// Disconnect close the broker connection
func (r *RabbitMQPublisher) Disconnect(ctx context.Context) error {
	return r.close()
}
