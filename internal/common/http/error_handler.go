package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/AlibekovAA/profile-cards/internal/common/errors"
	"github.com/AlibekovAA/profile-cards/internal/common/httpmetrics"
	"github.com/AlibekovAA/profile-cards/internal/common/logger"
	"github.com/AlibekovAA/profile-cards/internal/observability/metrics"
)

// ErrorHandler turns errors into JSON envelopes. Domain errors keep their
// code, status and message; anything else becomes INTERNAL_ERROR.
type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	de, ok := commonerrors.AsDomainError(err)
	if !ok {
		h.log.WithFields(r.Context(), logger.Fields{
			"path":   r.URL.Path,
			"action": "unhandled_error",
		}).Errorf("unhandled error: %v", err)
		de = commonerrors.ErrInternalError.WithCause(err)
	}

	traceID := TraceIDFromContext(r.Context())
	if traceID != "" && de.TraceID() == "" {
		de = de.WithTraceID(traceID)
	}
	status := de.HTTPStatus()

	// Upstream failures are already logged by the fetch controller.
	if ok && h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(r.Context(), logger.Fields{
			"error_code": de.Code(),
			"category":   string(de.Category()),
			"status":     status,
			"action":     "domain_error",
		}).Debugf("domain error: %s", de.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(string(de.Category()), de.Code()).Inc()
	metrics.HTTPErrorsTotal.WithLabelValues(strconv.Itoa(status), httpmetrics.NormalizePath(r.URL.Path)).Inc()

	if de.Category() == commonerrors.CategoryRateLimit {
		w.Header().Set("Retry-After", "1")
	}
	WriteErrorEnvelope(w, status, de.Code(), de.Message(), nil, de.TraceID())
}

func HandleError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	NewErrorHandler(log).HandleError(w, r, err)
}
