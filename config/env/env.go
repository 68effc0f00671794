package env

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golangid/botkit/bothelper"
	"github.com/golangid/botkit/logger"
	"github.com/joho/godotenv"
)

// Store driver
const (
	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Env model
type Env struct {
	ServiceName string
	Environment string
	DebugMode   bool

	// BotServerURL base url of the bot platform rest api
	BotServerURL string
	BotName      string
	BotID        string

	// ClientID and ClientSecret sign the jwt assertion
	ClientID     string
	ClientSecret string
	// Identity of the user, anonymous uuid generated when empty
	Identity    string
	IsAnonymous bool

	HTTPRetries       int
	HTTPTimeout       time.Duration
	HTTPRetrySleep    time.Duration
	HistoryLimit      int
	AuthCacheTTL      time.Duration
	LoadConfigTimeout time.Duration

	StoreDriver    string
	DbMongoHost    string
	DbSQLDSN       string
	DbRedisDSN     string
	RedisPubSubKey string

	Kafka struct {
		Brokers       []string
		ClientVersion string
		ClientID      string
		Topic         string
	}
	RabbitMQ struct {
		Broker       string
		ExchangeName string
		RoutingKey   string
	}

	JaegerTracingHost   string
	JaegerMaxPacketSize int
}

var env Env

// BaseEnv get global basic environment
func BaseEnv() Env {
	return env
}

// SetEnv set env for mocking data env
func SetEnv(newEnv Env) {
	env = newEnv
}

// Load environment, .env in WORKDIR is loaded first when present.
// All invalid or missing values are reported in one error.
func Load(serviceName string) (Env, error) {
	if err := godotenv.Load(os.Getenv(bothelper.WORKDIR) + ".env"); err != nil {
		logger.LogYellow(fmt.Sprintf("Warning: load env, %v", err))
	}

	e, err := parse(serviceName)
	if err != nil {
		return e, err
	}
	env = e
	logger.SetDebugMode(e.DebugMode)
	return e, nil
}

func parse(serviceName string) (e Env, err error) {
	mErrs := bothelper.NewMultiError()
	e.ServiceName = serviceName
	e.Environment = os.Getenv("ENVIRONMENT")
	e.DebugMode = parseBool("DEBUG_MODE")

	e.BotServerURL = strings.TrimSuffix(os.Getenv("BOT_SERVER_URL"), "/")
	if e.BotServerURL == "" {
		mErrs.Append("BOT_SERVER_URL", errors.New("missing BOT_SERVER_URL environment"))
	} else if u, err := url.Parse(e.BotServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		mErrs.Append("BOT_SERVER_URL", fmt.Errorf("invalid BOT_SERVER_URL environment %q", e.BotServerURL))
	}
	e.BotName = mustEnv(mErrs, "BOT_NAME")
	e.BotID = mustEnv(mErrs, "BOT_ID")
	e.ClientID = mustEnv(mErrs, "CLIENT_ID")
	e.ClientSecret = mustEnv(mErrs, "CLIENT_SECRET")
	e.Identity = os.Getenv("BOT_IDENTITY")
	e.IsAnonymous = e.Identity == "" || parseBool("BOT_IS_ANONYMOUS")

	e.HTTPRetries = parseInt(mErrs, "HTTP_RETRIES", 3)
	e.HTTPTimeout = parseDuration(mErrs, "HTTP_TIMEOUT", 10*time.Second)
	e.HTTPRetrySleep = parseDuration(mErrs, "HTTP_RETRY_SLEEP", 500*time.Millisecond)
	e.HistoryLimit = parseInt(mErrs, "HISTORY_LIMIT", 100)
	e.AuthCacheTTL = parseDuration(mErrs, "AUTH_CACHE_TTL", 30*time.Minute)
	e.LoadConfigTimeout = parseDuration(mErrs, "LOAD_CONFIG_TIMEOUT", 10*time.Second)

	e.StoreDriver = strings.ToLower(os.Getenv("STORE_DRIVER"))
	if e.StoreDriver == "" {
		e.StoreDriver = StoreMemory
	}
	e.DbMongoHost = os.Getenv("MONGODB_HOST")
	e.DbSQLDSN = os.Getenv("SQL_DSN")
	switch e.StoreDriver {
	case StoreMemory:
	case StoreMongo:
		if e.DbMongoHost == "" {
			mErrs.Append("MONGODB_HOST", errors.New("missing MONGODB_HOST environment for mongo store"))
		}
	case StorePostgres:
		if e.DbSQLDSN == "" {
			mErrs.Append("SQL_DSN", errors.New("missing SQL_DSN environment for postgres store"))
		}
	default:
		mErrs.Append("STORE_DRIVER", fmt.Errorf("unknown STORE_DRIVER %q", e.StoreDriver))
	}

	e.DbRedisDSN = os.Getenv("REDIS_DSN")
	e.RedisPubSubKey = os.Getenv("REDIS_PUBSUB_CHANNEL")

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		e.Kafka.Brokers = strings.Split(brokers, ",")
	}
	e.Kafka.ClientVersion = os.Getenv("KAFKA_CLIENT_VERSION")
	e.Kafka.ClientID = os.Getenv("KAFKA_CLIENT_ID")
	if e.Kafka.ClientID == "" {
		e.Kafka.ClientID = serviceName
	}
	e.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	if len(e.Kafka.Brokers) > 0 && e.Kafka.Topic == "" {
		mErrs.Append("KAFKA_TOPIC", errors.New("missing KAFKA_TOPIC environment"))
	}

	e.RabbitMQ.Broker = os.Getenv("RABBITMQ_BROKER")
	e.RabbitMQ.ExchangeName = os.Getenv("RABBITMQ_EXCHANGE_NAME")
	e.RabbitMQ.RoutingKey = os.Getenv("RABBITMQ_ROUTING_KEY")

	e.JaegerTracingHost = os.Getenv("JAEGER_TRACING_HOST")
	e.JaegerMaxPacketSize = parseInt(mErrs, "JAEGER_MAX_PACKET_SIZE", int(65000*bothelper.Byte))

	if mErrs.HasError() {
		return e, fmt.Errorf("basic environment error:\n%w", mErrs)
	}
	return e, nil
}

func mustEnv(mErrs bothelper.MultiError, key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		mErrs.Append(key, fmt.Errorf("missing %s environment", key))
	}
	return v
}

func parseBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

func parseInt(mErrs bothelper.MultiError, key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		mErrs.Append(key, fmt.Errorf("invalid %s environment %q", key, v))
		return def
	}
	return n
}

func parseDuration(mErrs bothelper.MultiError, key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		mErrs.Append(key, fmt.Errorf("invalid %s environment %q", key, v))
		return def
	}
	return d
}
