package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	// LogLevel is the level of logs to output (debug|info|warn|error)
	LogLevel string `env:"LOG_LEVEL" default:"info"`

	// ServerPort is the UDP port the game sends telemetry to
	ServerPort int `env:"SERVER_PORT" default:"20777"`

	// ServerReadTimeoutMilliseconds bounds each socket read so the receive loop can notice shutdown
	ServerReadTimeoutMilliseconds int `env:"SERVER_READ_TIMEOUT_MILLISECONDS" default:"500"`

	// ShutdownTimeoutSeconds is the number of seconds to wait for graceful shutdown
	ShutdownTimeoutSeconds int `env:"SHUTDOWN_TIMEOUT_SECONDS" default:"15"`

	// NATSClientPrefix is the prefix to use for the NATS client connection (prefix + hostname)
	NATSClientPrefix string `env:"NATS_CLIENT_PREFIX" default:"F1 Telemetry "`

	// NATSURL is the URL (with port) of the NATS server
	NATSURL string `env:"NATS_URL" default:"nats://localhost:4222"`

	// NATSOutgoingBufferSize is the size of the outgoing buffer for NATS connections
	NATSOutgoingBufferSize int `env:"NATS_OUTGOING_BUFFER_SIZE" default:"8388608"` // 8MB

	// TelemetrySubjectPrefix is the NATS subject prefix decoded packets are published under
	// (prefix + "." + packet kind)
	TelemetrySubjectPrefix string `env:"TELEMETRY_SUBJECT_PREFIX" default:"f1.telemetry"`

	// RelayUnimplementedPackets specifies whether packets without a decoded body are published
	RelayUnimplementedPackets bool `env:"RELAY_UNIMPLEMENTED_PACKETS" default:"false"`

	// DBConnectionString is the MySQL DSN used by the recorder and migrations
	DBConnectionString string `env:"DB_CONNECTION_STRING" default:"f1:f1@tcp(localhost:3306)/f1_telemetry?parseTime=true"`

	// DBQueryLogLevel is the level queries are logged at (debug|info)
	DBQueryLogLevel string `env:"DB_QUERY_LOG_LEVEL" default:"debug"`

	// InfluxURL is the InfluxDB v2 URL; empty disables the time-series sink
	InfluxURL string `env:"INFLUX_URL" default:""`

	// InfluxToken is the InfluxDB API token
	InfluxToken string `env:"INFLUX_TOKEN" default:""`

	// InfluxOrg is the InfluxDB organization points are written to
	InfluxOrg string `env:"INFLUX_ORG" default:"f1"`

	// InfluxBucket is the InfluxDB bucket points are written to
	InfluxBucket string `env:"INFLUX_BUCKET" default:"telemetry"`

	// InfluxBatchSize is the number of points buffered before a write
	InfluxBatchSize uint `env:"INFLUX_BATCH_SIZE" default:"2500"`
}

func ParseConfigFromEnv() Config {
	return env.Must(ParseConfig())
}

// ParseConfig is ParseConfigFromEnv without the panic.
func ParseConfig() (Config, error) {
	return env.ParseAsWithOptions[Config](env.Options{
		DefaultValueTagName: "default",
	})
}

// TelemetrySubject returns the subject packets of the given kind are published on.
func (c *Config) TelemetrySubject(kind string) string {
	return c.TelemetrySubjectPrefix + "." + kind
}

// TelemetryWildcardSubject matches every packet kind published under the prefix.
func (c *Config) TelemetryWildcardSubject() string {
	return c.TelemetrySubject("*")
}
