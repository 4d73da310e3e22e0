package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"transcriptions"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string   `envconfig:"TRANSCRIPTION_ADDRESS" default:":3443"`
	MetricsAddress  string   `envconfig:"TRANSCRIPTION_METRICS_ADDRESS" default:":8080"`
	LogLevel        string   `envconfig:"TRANSCRIPTION_LOG_LEVEL" default:"info"`
	AllowedOrigins  []string `envconfig:"TRANSCRIPTION_ALLOWED_ORIGINS" default:"*"`
	MigrationFolder string   `envconfig:"TRANSCRIPTION_MIGRATIONS_FOLDER" default:""`
	Processor       Processor
	Polling         Polling
	S3              S3
}

// Processor describes how to reach the external speech-to-text service.
type Processor struct {
	BaseURL string        `envconfig:"ASSEMBLYAI_BASE_URL" default:"https://api.assemblyai.com"`
	APIKey  string        `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	Timeout time.Duration `envconfig:"ASSEMBLYAI_TIMEOUT" default:"30s"`
}

type Polling struct {
	Interval         time.Duration `envconfig:"TRANSCRIPTION_POLL_INTERVAL" default:"5s"`
	Jitter           time.Duration `envconfig:"TRANSCRIPTION_POLL_JITTER" default:"30ms"`
	MaxAttempts      int           `envconfig:"TRANSCRIPTION_POLL_MAX_ATTEMPTS" default:"120"`
	MaxWait          time.Duration `envconfig:"TRANSCRIPTION_POLL_MAX_WAIT" default:"10m"`
	MaxStatusRetries int           `envconfig:"TRANSCRIPTION_POLL_STATUS_RETRIES" default:"3"`
	RetryDelay       time.Duration `envconfig:"TRANSCRIPTION_POLL_RETRY_DELAY" default:"1s"`
}

type S3 struct {
	Endpoint  string `envconfig:"TRANSCRIPTION_S3_ENDPOINT" default:"localhost:9000"`
	Bucket    string `envconfig:"TRANSCRIPTION_S3_BUCKET" default:"audio-uploads"`
	AccessKey string `envconfig:"TRANSCRIPTION_S3_ACCESS_KEY" default:""`
	SecretKey string `envconfig:"TRANSCRIPTION_S3_SECRET_KEY" default:""`
	UseSSL    bool   `envconfig:"TRANSCRIPTION_S3_USE_SSL" default:"false"`
	// PublicURL is the base under which uploaded objects are reachable by the processor.
	PublicURL string `envconfig:"TRANSCRIPTION_S3_PUBLIC_URL" default:"http://localhost:9000"`
}

// New reads the configuration from the environment, loading a .env file first when one exists.
func New() (*Config, error) {
	if singleConfig == nil {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg := new(Config)
		if err := envconfig.Process("", cfg); err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// NewDefault returns a fresh configuration built from the defaults and the
// process environment. It neither caches the result nor reads .env files.
func NewDefault() *Config {
	cfg := new(Config)
	_ = envconfig.Process("", cfg)
	return cfg
}
