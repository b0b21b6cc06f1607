package domain

import "errors"

var (
	// ErrInvalidProduct is returned when a product record is missing required fields
	ErrInvalidProduct = errors.New("invalid product record")

	// ErrSearchAPIFailure is returned when the search API request fails
	ErrSearchAPIFailure = errors.New("search API request failed")

	// ErrNoResults is returned when the search succeeded but every candidate was filtered out
	ErrNoResults = errors.New("no usable search results")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrComparisonFailed is returned when both the live path and the fallback
	// synthesis produced nothing to show
	ErrComparisonFailed = errors.New("comparison failed")
)
