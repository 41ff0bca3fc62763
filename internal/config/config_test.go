package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, BrokerLog, c.EventBroker)
	assert.Equal(t, []string{"kafka:9092"}, c.KafkaBrokers)
	assert.Equal(t, 300, c.IdempTTLSecs)
	assert.Equal(t, time.Second, c.DisbursementDelay)
	assert.Equal(t, 5*time.Second, c.DisbursementTimeout)
	assert.True(t, c.AutoMigrate)
	require.NoError(t, c.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("EVENT_BROKER", "Kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("DISBURSEMENT_DELAY_MS", "250")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "not-a-number")

	c := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "9090", c.AppPort)
	assert.Equal(t, BrokerKafka, c.EventBroker)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.KafkaBrokers)
	assert.Equal(t, 3, c.RedisDB)
	assert.False(t, c.AutoMigrate)
	assert.Equal(t, 250*time.Millisecond, c.DisbursementDelay)
	assert.Equal(t, 300, c.IdempTTLSecs, "unparsable values keep the default")
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(f, []byte("MYSQL_DB=from_file\nMYSQL_USER=file_user\n"), 0o600))

	t.Setenv("MYSQL_USER", "env_user")
	// godotenv.Load sets variables that t.Setenv does not know about
	t.Cleanup(func() { _ = os.Unsetenv("MYSQL_DB") })

	c := Load(f)
	assert.Equal(t, "from_file", c.MySQLDB)
	assert.Equal(t, "env_user", c.MySQLUser)
}

func TestValidate(t *testing.T) {
	base := func() *Config { return Load(filepath.Join(t.TempDir(), "missing.env")) }

	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"missing host", func(c *Config) { c.MySQLHost = "" }, false},
		{"bad mysql port", func(c *Config) { c.MySQLPort = "not-a-port" }, false},
		{"missing app port", func(c *Config) { c.AppPort = "" }, false},
		{"unknown broker", func(c *Config) { c.EventBroker = "nats" }, false},
		{"kafka without brokers", func(c *Config) { c.EventBroker = BrokerKafka; c.KafkaBrokers = nil }, false},
		{"rabbit without url", func(c *Config) { c.EventBroker = BrokerRabbitMQ; c.RabbitMQURL = "" }, false},
		{"rabbit", func(c *Config) { c.EventBroker = BrokerRabbitMQ }, true},
		{"zero timeout", func(c *Config) { c.DisbursementTimeout = 0 }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			err := c.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "los"}
	assert.Equal(t, "u:p@tcp(db:3306)/los?parseTime=true&loc=UTC&charset=utf8mb4", c.MySQLDSN())
}
