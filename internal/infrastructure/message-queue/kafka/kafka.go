package kafka

import (
	"context"

	"github.com/fadistore/storefront/config"
	"github.com/segmentio/kafka-go"
)

var KafkaConn *kafka.Conn

// CreateKafkaProducer dials the broker leader for the product events topic.
// Returns an error instead of panicking so the store can run without a
// broker when BROKER_ADDRESS is not configured.
func CreateKafkaProducer(config *config.Config) (*kafka.Conn, error) {
	conn, err := kafka.DialLeader(context.Background(), "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
	if err != nil {
		return nil, err
	}

	KafkaConn = conn
	return KafkaConn, nil
}
