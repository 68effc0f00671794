package cli

import (
	"context"
	"fmt"

	"github.com/golangid/botkit/botutils"
	"github.com/golangid/botkit/cache"
	"github.com/golangid/botkit/codebase/interfaces"
	"github.com/golangid/botkit/config/broker"
	"github.com/golangid/botkit/config/database"
	"github.com/golangid/botkit/config/env"
	"github.com/golangid/botkit/logger"
	"github.com/golangid/botkit/message"
	"github.com/golangid/botkit/publisher"
	"github.com/golangid/botkit/session"
	"github.com/golangid/botkit/store"
	"github.com/golangid/botkit/tracer"
	"github.com/golangid/botkit/transport"
	"github.com/golangid/botkit/validator"
	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"
)

// app dependencies of one command run
type app struct {
	env     env.Env
	session *session.Session
	closers []func(context.Context) error
}

func (a *app) addCloser(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

func (a *app) close(ctx context.Context) {
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			logger.LogE(err.Error())
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logger.LogE(err.Error())
		}
	}
}

func newApp(ctx context.Context, listener session.Listener) (a *app, err error) {
	cfg, err := env.Load(serviceName)
	if err != nil {
		return nil, err
	}
	a = &app{env: cfg}
	defer func() {
		if err != nil {
			a.close(ctx)
		}
	}()

	loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadConfigTimeout)
	defer cancel()

	if cfg.JaegerTracingHost != "" {
		closer, err := tracer.InitJaeger(serviceName,
			tracer.OptionSetAgentHost(cfg.JaegerTracingHost),
			tracer.OptionSetLevel(cfg.Environment),
			tracer.OptionSetMaxPacketSize(cfg.JaegerMaxPacketSize),
		)
		if err != nil {
			return nil, err
		}
		a.addCloser(func(context.Context) error { return closer.Close() })
	}

	botInfo := message.BotInfo{ChatBot: cfg.BotName, TaskBotID: cfg.BotID}
	if err := validator.NewStructValidator().ValidateStruct(botInfo); err != nil {
		return nil, fmt.Errorf("bot info: %w", err)
	}

	var pool *redis.Pool
	if cfg.DbRedisDSN != "" {
		if pool, err = database.InitRedis(cfg.DbRedisDSN); err != nil {
			return nil, err
		}
		a.addCloser(func(context.Context) error { return pool.Close() })
	}

	st, err := openStore(loadCtx, cfg)
	if err != nil {
		return nil, err
	}
	a.addCloser(st.Disconnect)

	pub, err := openPublishers(cfg, pool)
	if err != nil {
		return nil, err
	}
	a.addCloser(pub.Disconnect)

	opts := []session.Option{
		session.SetStore(st),
		session.SetListener(listener),
	}
	if pool != nil {
		opts = append(opts, session.SetCache(cache.NewRedisCache(pool)))
	}
	if pub.Len() > 0 {
		opts = append(opts, session.SetPublisher(pub))
	}

	identity, anonymous := cfg.Identity, cfg.IsAnonymous
	if identity == "" {
		identity, anonymous = uuid.NewString(), true
	}

	request := botutils.NewHTTPRequest(
		botutils.HTTPRequestSetRetries(cfg.HTTPRetries),
		botutils.HTTPRequestSetSleepBetweenRetry(cfg.HTTPRetrySleep),
		botutils.HTTPRequestSetTimeout(cfg.HTTPTimeout),
	)
	api := transport.NewClient(cfg.BotServerURL, request, transport.SetHistoryLimit(cfg.HistoryLimit))

	a.session = session.New(session.Config{
		BotInfo:      botInfo,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Identity:     identity,
		IsAnonymous:  anonymous,
		ThreadID:     threadID,
		AuthCacheTTL: cfg.AuthCacheTTL,
		EventTopic:   cfg.Kafka.Topic,
	}, api, opts...)
	return a, nil
}

func openStore(ctx context.Context, cfg env.Env) (store.Store, error) {
	switch cfg.StoreDriver {
	case env.StoreMongo:
		db, err := database.ConnectMongoDB(ctx, cfg.DbMongoHost)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureMongoIndexes(ctx, db); err != nil {
			logger.LogEf("mongo index: %v", err)
		}
		return store.NewMongoStore(db), nil

	case env.StorePostgres:
		db, err := database.ConnectPostgres(ctx, cfg.DbSQLDSN)
		if err != nil {
			return nil, err
		}
		pg := store.NewPostgresStore(db)
		if err := pg.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return pg, nil
	}
	return store.NewMemoryStore(), nil
}

func openPublishers(cfg env.Env, pool *redis.Pool) (*publisher.Multi, error) {
	multi := publisher.NewMulti()

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := broker.NewKafkaProducer(cfg.Kafka.Brokers, broker.InitKafkaConfig(cfg.Kafka.ClientID, cfg.Kafka.ClientVersion))
		if err != nil {
			return nil, err
		}
		multi.Add("kafka", publisher.WithTopic(publisher.NewKafkaPublisher(producer), cfg.Kafka.Topic))
	}

	if cfg.RabbitMQ.Broker != "" {
		conn, err := broker.DialRabbitMQ(cfg.RabbitMQ.Broker, cfg.RabbitMQ.ExchangeName)
		if err != nil {
			multi.Disconnect(context.Background())
			return nil, err
		}
		multi.Add("rabbitmq", publisher.WithTopic(publisher.NewRabbitMQPublisher(conn, cfg.RabbitMQ.ExchangeName), cfg.RabbitMQ.RoutingKey))
	}

	if pool != nil && cfg.RedisPubSubKey != "" {
		multi.Add("redis", publisher.WithTopic(redisPublisher{publisher.NewRedisPublisher(pool)}, cfg.RedisPubSubKey))
	}
	return multi, nil
}

// redisPublisher share the pool with the cache, the pool is closed once by app
type redisPublisher struct {
	interfaces.Publisher
}
