package handler

import (
	"fmt"
	"net/http"

	domainerrors "foodie/internal/domain/errors"

	"github.com/pkg/errors"
)

// redeliver marks a failure the broker should retry.
type redeliver struct {
	cause error
}

func (r *redeliver) Error() string {
	return fmt.Sprintf("redeliver: %v", r.cause)
}

func (r *redeliver) Unwrap() error {
	return r.cause
}

// classify keeps application errors below 500 as they are: a bad payload or
// an unknown order fails the same way on every delivery. Anything else is
// wrapped for redelivery.
func classify(err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		return err
	}

	return &redeliver{cause: err}
}

func shouldRedeliver(err error) bool {
	var r *redeliver

	return errors.As(err, &r)
}

// ackStatus is the push response: 503 makes the broker redeliver, 200 acks.
func ackStatus(err error) int {
	if err != nil && shouldRedeliver(err) {
		return http.StatusServiceUnavailable
	}

	return http.StatusOK
}
