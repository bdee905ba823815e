package domain

import "errors"

var (
	// ErrFeedUnavailable is returned when the price feed cannot be fetched or decoded
	ErrFeedUnavailable = errors.New("price feed unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrLineIndexOutOfRange is returned when a recipe mutation addresses an invalid position
	ErrLineIndexOutOfRange = errors.New("line item index out of range")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
