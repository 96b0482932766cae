package commonerrors

import "net/http"

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryValidation,
		http.StatusInternalServerError,
		"missing required environment variable",
	)

	ErrInvalidConfig = NewDomainError(
		"INVALID_CONFIG",
		CategoryValidation,
		http.StatusInternalServerError,
		"invalid configuration",
	)

	ErrUpstreamNotOK = NewDomainError(
		"UPSTREAM_NOT_OK",
		CategoryExternal,
		http.StatusBadGateway,
		"Network response was not ok",
	)

	ErrUpstreamUnavailable = NewDomainError(
		"UPSTREAM_UNAVAILABLE",
		CategoryExternal,
		http.StatusBadGateway,
		"Failed to fetch",
	)

	ErrInvalidUpstreamPayload = NewDomainError(
		"INVALID_UPSTREAM_PAYLOAD",
		CategoryExternal,
		http.StatusBadGateway,
		"Failed to decode user list",
	)

	ErrRateLimited = NewDomainError(
		"RATE_LIMITED",
		CategoryRateLimit,
		http.StatusTooManyRequests,
		"rate limit exceeded",
	)

	ErrRouteNotFound = NewDomainError(
		"NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"not found",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
