package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  env: test
  serviceName: foodie
http:
  port: 9090
cache:
  provider: redis
pubsub:
  provider: kafka
  topicId: order-events
  brokers:
    - broker-a:9092
checkout:
  estimatedDeliveryTime: 20-30 min
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(testConfigYAML), 0o600))

	return dir
}

func TestLoadWithEnv_ReadsFileAndEnvOverrides(t *testing.T) {
	dir := writeTestConfig(t)
	t.Chdir(dir)
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("PUBSUB_TOPICID", "orders-v2")
	t.Setenv("PUBSUB_BROKERS", "b1:9092,b2:9092")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "foodie", cfg.Env.ServiceName)
	assert.Equal(t, 7070, cfg.HTTP.Port)
	require.NotNil(t, cfg.PubSub)
	assert.Equal(t, "kafka", cfg.PubSub.Provider)
	assert.Equal(t, "orders-v2", cfg.PubSub.TopicID)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.PubSub.Brokers)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("does-not-exist")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	dir := writeTestConfig(t)
	t.Chdir(dir)

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "redis", cfg.Cache.Provider)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "2.99", cfg.Checkout.DeliveryFee)
	assert.Equal(t, "20-30 min", cfg.Checkout.EstimatedDeliveryTime)
}

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, "memory", cfg.Cache.Provider)
	assert.Equal(t, defaultEstimatedDeliveryTime, cfg.Checkout.EstimatedDeliveryTime)
	assert.InDelta(t, defaultAuthRequestsPerSecond, cfg.RateLimit.RequestsPerSecond, 0)
	assert.Equal(t, defaultAuthBurst, cfg.RateLimit.Burst)
	assert.Equal(t, defaultRateLimitExpiry, cfg.RateLimit.ExpiresIn)
	assert.Equal(t, defaultWorkerPort, cfg.Worker.Port)
	assert.Equal(t, defaultWorkerHandlerTimeout, cfg.Worker.HandlerTimeout)
}

func TestReplicasFromEnv(t *testing.T) {
	env := map[string]string{
		"POSTGRES_REPLICAS_0_HOST":     "replica-a",
		"POSTGRES_REPLICAS_0_PORT":     "5432",
		"POSTGRES_REPLICAS_0_USERNAME": "reader",
		"POSTGRES_REPLICAS_1_HOST":     "replica-b",
		"POSTGRES_REPLICAS_2_HOST":     "replica-c",
		"POSTGRES_REPLICAS_2_PORT":     "5432",
	}

	replicas := replicasFromEnv(func(key string) string { return env[key] })

	require.Len(t, replicas, 1)
	assert.Equal(t, "replica-a", replicas[0].Host)
	assert.Equal(t, "reader", replicas[0].UserName)
}

func TestLoadWithEnv_SearchesExtraDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "test.yaml"), []byte(testConfigYAML), 0o600))
	t.Chdir(root)

	cfg, err := LoadWithEnv[Config]("test", "config")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}
