package httpapi

import "errors"

var (
	ErrPayloadTooLarge       = errors.New("payload too large")
	ErrInvalidSubscriptionID = errors.New("invalid subscription id")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrPublishFailed         = errors.New("failed to publish event")
)
