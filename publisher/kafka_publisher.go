package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/golangid/botkit/botshared"
	"github.com/golangid/botkit/tracer"
)

// KafkaPublisher kafka
type KafkaPublisher struct {
	producer sarama.SyncProducer
}

// NewKafkaPublisher constructor
func NewKafkaPublisher(producer sarama.SyncProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// PublishMessage method
func (p *KafkaPublisher) PublishMessage(ctx context.Context, args *botshared.PublisherArgument) (err error) {
	trace := tracer.StartTrace(ctx, "kafka:publish_message")
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
		trace.SetError(err)
		trace.Finish()
	}()

	payload := payloadOf(args)

	trace.SetTag("topic", args.Topic)
	trace.SetTag("key", args.Key)
	trace.Log("message", payload)

	msg := &sarama.ProducerMessage{
		Topic:     args.Topic,
		Key:       sarama.StringEncoder(args.Key),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: time.Now(),
	}
	for key, value := range args.Header {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(fmt.Sprint(value)),
		})
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return err
	}
	trace.SetTag("partition", partition)
	trace.SetTag("offset", offset)
	return nil
}

// Disconnect close the producer
func (p *KafkaPublisher) Disconnect(ctx context.Context) error {
	return p.producer.Close()
}
