package http

import (
	"net/http"

	"github.com/AlibekovAA/profile-cards/internal/common/constants"
	"github.com/AlibekovAA/profile-cards/internal/common/httpmetrics"
	"github.com/AlibekovAA/profile-cards/internal/common/logger"
)

// BuildBaseHandler wraps handler with the shared middleware chain. Extra
// middlewares run after the trace id is assigned, outermost first.
func BuildBaseHandler(appName string, log *logger.Logger, handler http.Handler, extra ...func(http.Handler) http.Handler) http.Handler {
	metrics := httpmetrics.New(appName)
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware
	csp := ContentSecurityPolicyMiddleware("")

	inner := maxRequestSize(metrics.Wrap(handler))
	for i := len(extra) - 1; i >= 0; i-- {
		inner = extra[i](inner)
	}

	return securityHeaders(csp(recovery(traceID(inner))))
}
