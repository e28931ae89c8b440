// Package qrcode renders order tracking QR codes.
package qrcode

import (
	"encoding/json"
	"strings"

	"foodie/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const trackingKind = "order-tracking"

var recoveryLevels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

// trackingPayload is the JSON text encoded in a tracking code.
type trackingPayload struct {
	OrderID string `json:"order_id"`
	Kind    string `json:"type"`
	URL     string `json:"url,omitempty"`
}

type renderer struct {
	size    int
	level   qrcode.RecoveryLevel
	baseURL string
}

// NewQRCodeService falls back to medium recovery for an unknown level. A
// non-empty baseURL adds <baseURL>/orders/<id> for scanners that open links.
func NewQRCodeService(size int, recoveryLevel, baseURL string) service.QRCodeService {
	level, ok := recoveryLevels[strings.ToUpper(recoveryLevel)]
	if !ok {
		level = qrcode.Medium
	}

	return &renderer{
		size:    size,
		level:   level,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (r *renderer) GenerateOrderTrackingQR(orderID uuid.UUID) ([]byte, error) {
	text, err := r.trackingText(orderID)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(text, r.level, r.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render tracking code")
	}

	return png, nil
}

func (r *renderer) trackingText(orderID uuid.UUID) (string, error) {
	payload := trackingPayload{OrderID: orderID.String(), Kind: trackingKind}
	if r.baseURL != "" {
		payload.URL = r.baseURL + "/orders/" + payload.OrderID
	}

	text, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode tracking payload")
	}

	return string(text), nil
}
