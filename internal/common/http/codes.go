package http

const (
	CodeUnknown          = "UNKNOWN"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	CodeRateLimited      = "RATE_LIMITED"
)
