package service

import "github.com/google/uuid"

// QRCodeService encodes an order ID into a scannable tracking code.
type QRCodeService interface {
	// GenerateOrderTrackingQR returns PNG bytes.
	GenerateOrderTrackingQR(orderID uuid.UUID) ([]byte, error)
}
