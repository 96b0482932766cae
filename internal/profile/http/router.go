package http

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	gorillaWS "github.com/gorilla/websocket"

	"github.com/AlibekovAA/profile-cards/internal/common/config"
	"github.com/AlibekovAA/profile-cards/internal/common/constants"
	commonerrors "github.com/AlibekovAA/profile-cards/internal/common/errors"
	commonhttp "github.com/AlibekovAA/profile-cards/internal/common/http"
	"github.com/AlibekovAA/profile-cards/internal/common/logger"
	"github.com/AlibekovAA/profile-cards/internal/observability/metrics"
	"github.com/AlibekovAA/profile-cards/internal/profile/fetch"
	"github.com/AlibekovAA/profile-cards/internal/profile/render"
)

const WebSocketPath = "/ws"

// StateReader is the read-only view of a fetch.Controller.
type StateReader interface {
	State() fetch.State
	Done() <-chan struct{}
}

type Handler struct {
	states   StateReader
	renderer render.Renderer
	errors   *commonhttp.ErrorHandler
	log      *logger.Logger
	upgrader gorillaWS.Upgrader
	router   *mux.Router

	closing   chan struct{}
	closeOnce sync.Once
}

func NewHandler(states StateReader, renderer render.Renderer, cfg config.ProfilesConfig, log *logger.Logger) *Handler {
	h := &Handler{
		states:   states,
		renderer: renderer,
		errors:   commonhttp.NewErrorHandler(log),
		log:      log,
		upgrader: gorillaWS.Upgrader{
			ReadBufferSize:  constants.WebSocketReadBufferSize,
			WriteBufferSize: constants.WebSocketWriteBufferSize,
		},
		closing: make(chan struct{}),
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultProfilesRequestTimeout
	}
	withTimeout := commonhttp.WithTimeout(timeout)

	r := mux.NewRouter()
	r.HandleFunc("/", withTimeout(h.page)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/api/state", withTimeout(h.state)).Methods(http.MethodGet)
	r.HandleFunc("/api/users", withTimeout(h.users)).Methods(http.MethodGet)
	r.HandleFunc(WebSocketPath, h.stream).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(h.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)
	h.router = r

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Close ends open state streams. Used as a shutdown hook.
func (h *Handler) Close() {
	h.closeOnce.Do(func() { close(h.closing) })
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	var page render.Page
	switch s := h.states.State().(type) {
	case fetch.Loaded:
		cards := h.renderer.RenderAll(s.Users)
		metrics.CardsRendered.WithLabelValues("page").Add(float64(len(cards)))
		page = render.CardsPage(cards)
	case fetch.Failed:
		page = render.ErrorPage(s.Message)
	default:
		page = render.LoadingPage(WebSocketPath)
	}

	var buf bytes.Buffer
	if err := render.WritePage(&buf, page); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, newSnapshot(h.states.State()))
}

func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	switch s := h.states.State().(type) {
	case fetch.Loaded:
		cards := h.renderer.RenderAll(s.Users)
		metrics.CardsRendered.WithLabelValues("api").Add(float64(len(cards)))
		commonhttp.WriteJSON(w, http.StatusOK, usersResponse{Users: cards})
	case fetch.Failed:
		err := s.Err
		if !commonerrors.IsDomainError(err) {
			err = commonerrors.ErrUpstreamUnavailable.WithCause(err)
		}
		h.errors.HandleError(w, r, err)
	default:
		commonhttp.WriteJSON(w, http.StatusAccepted, newSnapshot(s))
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.errors.HandleError(w, r, commonerrors.ErrRouteNotFound)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, commonhttp.TraceIDFromContext(r.Context()))
}

type usersResponse struct {
	Users []render.Card `json:"users"`
}

type snapshot struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count"`
}

func newSnapshot(s fetch.State) snapshot {
	out := snapshot{State: fetch.KindPending.String()}
	if s == nil {
		return out
	}
	out.State = s.Kind().String()
	switch v := s.(type) {
	case fetch.Loaded:
		out.Count = len(v.Users)
	case fetch.Failed:
		out.Message = v.Message
	}
	return out
}

func writeDeadline() time.Time {
	return time.Now().Add(constants.WebSocketWriteWait)
}
