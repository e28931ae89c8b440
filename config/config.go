// Package config loads foodie's settings from config.yaml with environment
// variable overrides. An env var maps onto a YAML path by splitting on "_"
// and matching segments case-insensitively, so POSTGRES_MASTER_USERNAME
// sets postgres.master.userName.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/slighter12/go-lib/database/postgres"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		// AllowOrigins lists browser origins allowed to call the API. Empty allows any.
		AllowOrigins []string `json:"allowOrigins" yaml:"allowOrigins"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Database *DatabaseConfig `json:"database" yaml:"database"`

	SecretKey SecretKeyConfig `json:"secretKey" yaml:"secretKey"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	// Redis backs the query cache when cache.provider is redis.
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	Cache *CacheConfig `json:"cache" yaml:"cache"`

	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub selects the order event transport. Nil disables publishing.
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Checkout defaults apply when a restaurant row no longer exists.
	Checkout *CheckoutConfig `json:"checkout" yaml:"checkout"`

	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

// SecretKeyConfig holds the HMAC secrets for access and refresh tokens.
type SecretKeyConfig struct {
	Access  string `json:"access" yaml:"access"`
	Refresh string `json:"refresh" yaml:"refresh"`
}

// DatabaseConfig controls schema management and query logging.
type DatabaseConfig struct {
	AutoMigrate        bool          `json:"autoMigrate" yaml:"autoMigrate"`
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
}

type GoogleOAuthConfig struct {
	// Only the client ID is needed for ID token verification.
	ClientID string `json:"clientId" yaml:"clientId"`
}

// AuthConfig tunes password hashing and session issuance.
type AuthConfig struct {
	BcryptCost        int           `json:"bcryptCost" yaml:"bcryptCost"`
	MaxActiveSessions int           `json:"maxActiveSessions" yaml:"maxActiveSessions"`
	AccessTokenTTL    time.Duration `json:"accessTokenTtl" yaml:"accessTokenTtl"`
	RefreshTokenTTL   time.Duration `json:"refreshTokenTtl" yaml:"refreshTokenTtl"`
}

type PasswordStrengthConfig struct {
	MinLength        int  `json:"minLength" yaml:"minLength"`
	RequireUppercase bool `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool `json:"requireNumbers" yaml:"requireNumbers"`
	RequireSpecial   bool `json:"requireSpecial" yaml:"requireSpecial"`
	MaxLength        int  `json:"maxLength" yaml:"maxLength"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// CacheConfig selects the server-side query cache.
type CacheConfig struct {
	// Provider is "redis" or "memory".
	Provider string `json:"provider" yaml:"provider"`

	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// PubSubConfig names one transport and its settings. Only the fields of the
// chosen provider are read.
type PubSubConfig struct {
	// Provider is local, google, kafka or rabbitmq. Empty disables publishing.
	Provider string `json:"provider" yaml:"provider"`

	ProjectID string `json:"projectId" yaml:"projectId"`

	// TopicID is the Pub/Sub topic, the Kafka topic or the AMQP exchange.
	TopicID string `json:"topicId" yaml:"topicId"`

	// LocalEndpoint is the worker's /push URL.
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	Brokers []string `json:"brokers" yaml:"brokers"`

	AMQPURL string `json:"amqpUrl" yaml:"amqpUrl"`
}

type CheckoutConfig struct {
	DeliveryFee           string `json:"deliveryFee" yaml:"deliveryFee"`
	EstimatedDeliveryTime string `json:"estimatedDeliveryTime" yaml:"estimatedDeliveryTime"`
}

// RateLimitConfig throttles the auth endpoints per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64       `json:"requestsPerSecond" yaml:"requestsPerSecond"`
	Burst             int           `json:"burst" yaml:"burst"`
	ExpiresIn         time.Duration `json:"expiresIn" yaml:"expiresIn"`
}

type WorkerConfig struct {
	Port int `json:"port" yaml:"port"`
	// HandlerTimeout bounds one pushed event; keep it under the subscription's ack deadline.
	HandlerTimeout time.Duration `json:"handlerTimeout" yaml:"handlerTimeout"`
}

// New loads config.yaml from the working directory or a nearby config
// directory and fills unset values with defaults.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = replicasFromEnv(os.Getenv)
	}

	return cfg, nil
}

// replicasFromEnv reads POSTGRES_REPLICAS_<n>_{HOST,PORT,USERNAME,PASSWORD}
// for n = 0, 1, ... and stops at the first index without host and port.
func replicasFromEnv(getenv func(string) string) []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig
	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"
		host, port := getenv(prefix+"HOST"), getenv(prefix+"PORT")
		if host == "" || port == "" {
			return replicas
		}
		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: getenv(prefix + "USERNAME"),
			Password: getenv(prefix + "PASSWORD"),
		})
	}
}
