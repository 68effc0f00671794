package publisher

import (
	"context"

	"github.com/golangid/botkit/botshared"
	"github.com/golangid/botkit/tracer"
	"github.com/gomodule/redigo/redis"
)

// RedisPublisher redis pubsub, topic of PublisherArgument is the channel
type RedisPublisher struct {
	pool *redis.Pool
}

// NewRedisPublisher constructor
func NewRedisPublisher(pool *redis.Pool) *RedisPublisher {
	return &RedisPublisher{pool: pool}
}

// PublishMessage method
func (r *RedisPublisher) PublishMessage(ctx context.Context, args *botshared.PublisherArgument) (err error) {
	trace := tracer.StartTrace(ctx, "redis:publish_message")
	defer func() { trace.SetError(err); trace.Finish() }()

	conn := r.pool.Get()
	defer conn.Close()

	payload := payloadOf(args)
	trace.SetTag("channel", args.Topic)
	trace.Log("message", payload)

	receivers, err := redis.Int(conn.Do("PUBLISH", args.Topic, payload))
	if err != nil {
		return err
	}
	trace.SetTag("receivers", receivers)
	return nil
}

// Disconnect close the pool
func (r *RedisPublisher) Disconnect(ctx context.Context) error {
	return r.pool.Close()
}
