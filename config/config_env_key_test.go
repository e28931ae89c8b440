package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"checkout": map[string]any{
			"deliveryFee":           "",
			"estimatedDeliveryTime": "",
		},
		"rateLimit": map[string]any{
			"requestsPerSecond": 0,
		},
		"http": map[string]any{
			"allowOrigins": []string{},
		},
		"postgres": map[string]any{
			"master": map[string]any{
				"userName": "foodie",
			},
		},
	}

	tests := map[string]string{
		"CHECKOUT_DELIVERYFEE":           "checkout.deliveryFee",
		"CHECKOUT_ESTIMATEDDELIVERYTIME": "checkout.estimatedDeliveryTime",
		"RATELIMIT_REQUESTSPERSECOND":    "rateLimit.requestsPerSecond",
		"HTTP_ALLOWORIGINS":              "http.allowOrigins",
		"POSTGRES_MASTER_USERNAME":       "postgres.master.userName",
		"WORKER_PORT":                    "worker.port",
	}

	for envKey, want := range tests {
		t.Run(envKey, func(t *testing.T) {
			assert.Equal(t, want, canonicalizeEnvKey(envKey, existing))
		})
	}
}
