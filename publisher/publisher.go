package publisher

import (
	"context"
	"encoding/json"

	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/botkit/botshared"
	"github.com/golangid/botkit/codebase/interfaces"
)

const defaultContentType = "application/json"

func payloadOf(args *botshared.PublisherArgument) []byte {
	if len(args.Message) > 0 {
		return args.Message
	}
	return bothelper.ToBytes(args.Data)
}

// EventArgument publisher argument of a conversation event keyed by thread
func EventArgument(topic string, event botshared.ConversationEvent) *botshared.PublisherArgument {
	message, _ := json.Marshal(event)
	return &botshared.PublisherArgument{
		Topic:       topic,
		Key:         event.ThreadID,
		Header:      map[string]interface{}{"event": event.Event},
		ContentType: defaultContentType,
		Data:        event,
		Message:     message,
	}
}

type topicPublisher struct {
	topic     string
	publisher interfaces.Publisher
}

// WithTopic publish to topic whatever topic the argument carry, empty topic keep the argument topic
func WithTopic(p interfaces.Publisher, topic string) interfaces.Publisher {
	if topic == "" {
		return p
	}
	return &topicPublisher{topic: topic, publisher: p}
}

func (t *topicPublisher) PublishMessage(ctx context.Context, args *botshared.PublisherArgument) error {
	arg := *args
	arg.Topic = t.topic
	return t.publisher.PublishMessage(ctx, &arg)
}

func (t *topicPublisher) Disconnect(ctx context.Context) error {
	if closer, ok := t.publisher.(interfaces.Closer); ok {
		return closer.Disconnect(ctx)
	}
	return nil
}
