package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DefaultAdminPassword is the bootstrap password for the seeded admin
	// account. It is meant to be changed right after the first deployment
	// via the change-password page.
	DefaultAdminPassword = "Fadi!!@@1"

	// MaxImageSize is the upload ceiling for product images (5 MiB).
	MaxImageSize = 5 * 1024 * 1024

	// UploadDir is the fixed directory uploaded product images are written
	// to. It is served under /static/uploads/.
	UploadDir = "static/uploads"
)

type Config struct {
	Environment      string
	ServicePort      string
	MetricsPort      string
	SessionSecret    string
	PostgreSQLConfig PostgreSQLConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
}

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServicePort:   getEnv("PORT", "8080"),
		MetricsPort:   getEnv("METRICS_PORT", "8081"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     getEnv("DB_HOST", "127.0.0.1"),
			DBName:     getEnv("DB_NAME", "fadi_store"),
			DBPort:     getEnv("DB_PORT", "5432"),
			DBUsername: getEnv("DB_USERNAME", "postgres"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "product-events"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("TRACING_COLLECTOR_HOST"),
		},
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
