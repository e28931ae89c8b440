// Package constants holds provider names shared by configuration and infrastructure.
package constants

// Deployment environments as set in env.env.
const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Event publisher providers.
const (
	PubSubProviderLocal    = "local"
	PubSubProviderGoogle   = "google"
	PubSubProviderKafka    = "kafka"
	PubSubProviderRabbitMQ = "rabbitmq"
)

// Query cache providers.
const (
	CacheProviderMemory = "memory"
	CacheProviderRedis  = "redis"
)

// Event types carried in the event_type attribute of published messages.
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)
