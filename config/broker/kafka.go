package broker

import (
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/golangid/botkit/logger"
)

// InitKafkaConfig init kafka producer configuration
func InitKafkaConfig(clientID, clientVersion string) *sarama.Config {
	kafkaConfig := sarama.NewConfig()
	if clientVersion == "" {
		clientVersion = "2.1.1"
	}
	kafkaConfig.Version, _ = sarama.ParseKafkaVersion(clientVersion)

	kafkaConfig.ClientID = clientID
	kafkaConfig.Producer.Retry.Max = 15
	kafkaConfig.Producer.Retry.Backoff = 50 * time.Millisecond
	kafkaConfig.Producer.RequiredAcks = sarama.WaitForAll
	kafkaConfig.Producer.Return.Successes = true
	return kafkaConfig
}

// NewKafkaProducer create sync producer to brokers
func NewKafkaProducer(brokers []string, cfg *sarama.Config) (sarama.SyncProducer, error) {
	defer logger.LogWithDefer("Load Kafka producer...")()

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}
