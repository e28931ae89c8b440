package pubsub

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// LocalSubscription is the subscription name the local transport stamps on its pushes.
const LocalSubscription = "projects/local/subscriptions/order-events-sub"

// PushEnvelope is the body of a Pub/Sub push request. The local transport
// emits it and the order event worker decodes it, whichever broker delivered.
type PushEnvelope struct {
	Message      PushedMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

// PushedMessage is one message inside a PushEnvelope. Data is base64.
type PushedMessage struct {
	Data        string            `json:"data"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	MessageID   string            `json:"messageId"`
	PublishTime string            `json:"publishTime"`
	OrderingKey string            `json:"orderingKey,omitempty"`
}

func newPushEnvelope(msg *message, subscription string, now time.Time) *PushEnvelope {
	return &PushEnvelope{
		Message: PushedMessage{
			Data:        base64.StdEncoding.EncodeToString(msg.Data),
			Attributes:  msg.Attributes,
			MessageID:   uuid.NewString(),
			PublishTime: now.UTC().Format(time.RFC3339),
			OrderingKey: msg.Key,
		},
		Subscription: subscription,
	}
}

// Payload decodes the message body.
func (e *PushEnvelope) Payload() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(e.Message.Data)

	return data, errors.Wrap(err, "invalid base64 message data")
}

// Attribute returns one message attribute, or "".
func (e *PushEnvelope) Attribute(name string) string {
	return e.Message.Attributes[name]
}
