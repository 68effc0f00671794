package broker

import (
	"fmt"

	"github.com/golangid/botkit/logger"
	"github.com/streadway/amqp"
)

// DialRabbitMQ connect to broker and declare a durable topic exchange when exchangeName is set
func DialRabbitMQ(brokerURL, exchangeName string) (*amqp.Connection, error) {
	defer logger.LogWithDefer("Load RabbitMQ broker connection...")()

	conn, err := amqp.Dial(brokerURL)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	if exchangeName == "" {
		return conn, nil
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer ch.Close()
	if err := ch.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	return conn, nil
}
