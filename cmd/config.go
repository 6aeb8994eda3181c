package cmd

import (
	"fmt"
	"strings"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort   string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	KafkaHost              string
	KafkaOrderChangedTopic string

	OutboxRelaySchedule string
	OutboxBatchSize     int
	OutboxMaxAttempts   int

	SnowflakeNode int64
}

// PostgresDSN builds the connection string for gorm.io/driver/postgres.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KafkaHost on commas. Empty when Kafka is not configured.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaHost, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
