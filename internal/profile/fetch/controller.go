package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AlibekovAA/profile-cards/internal/common/clock"
	commonerrors "github.com/AlibekovAA/profile-cards/internal/common/errors"
	"github.com/AlibekovAA/profile-cards/internal/common/logger"
	"github.com/AlibekovAA/profile-cards/internal/observability/metrics"
	"github.com/AlibekovAA/profile-cards/internal/profile/domain"
)

type Option func(*Controller)

func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) {
		ctrl.clock = c
	}
}

// Controller owns the single user list request and its State. The state is
// written once, by the request's completion, and read any number of times.
type Controller struct {
	id     string
	source UserSource
	log    *logger.Logger
	clock  clock.Clock

	mu       sync.RWMutex
	state    State
	tornDown bool
	cancel   context.CancelFunc

	startOnce sync.Once
	done      chan struct{}
	teardown  chan struct{}
}

func NewController(source UserSource, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		source:   source,
		log:      log,
		clock:    clock.NewRealClock(),
		state:    Pending{},
		done:     make(chan struct{}),
		teardown: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	metrics.FetchState.Set(float64(KindPending))
	metrics.UsersLoaded.Set(0)
	return c
}

func (c *Controller) ID() string {
	return c.id
}

// Start issues the request in the background. Only the first call does
// anything; ctx bounds the request itself.
func (c *Controller) Start(ctx context.Context) <-chan struct{} {
	c.startOnce.Do(func() {
		c.mu.Lock()
		if c.tornDown {
			c.mu.Unlock()
			return
		}
		runCtx, cancel := context.WithCancel(ctx)
		c.cancel = cancel
		c.mu.Unlock()

		go c.run(runCtx, cancel)
	})
	return c.done
}

// Run starts the controller if needed and blocks until the state is
// terminal, ctx ends or the controller is torn down.
func (c *Controller) Run(ctx context.Context) State {
	done := c.Start(ctx)
	select {
	case <-done:
	case <-ctx.Done():
	case <-c.teardown:
	}
	return c.State()
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Teardown cancels an in-flight request. A completion arriving afterwards is
// dropped and the state is left untouched.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tornDown {
		return
	}
	c.tornDown = true
	close(c.teardown)
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	fields := logger.Fields{
		"controller_id": c.id,
	}
	if s, ok := c.source.(interface{ Endpoint() string }); ok {
		fields["endpoint"] = s.Endpoint()
	}

	c.log.WithFields(ctx, withAction(fields, "fetch_started")).Info("fetching user list")

	start := c.clock.Now()
	users, err := c.fetch(ctx)
	elapsed := c.clock.Since(start)

	c.commit(ctx, settle(users, err), elapsed, fields)
}

func (c *Controller) fetch(ctx context.Context) (users []domain.User, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = commonerrors.ErrInternalError.WithCause(fmt.Errorf("user source panicked: %v", r))
		}
	}()
	return c.source.FetchUsers(ctx)
}

func (c *Controller) commit(ctx context.Context, next State, elapsed time.Duration, fields logger.Fields) {
	c.mu.Lock()
	if c.tornDown {
		c.mu.Unlock()
		c.log.WithFields(ctx, withAction(fields, "fetch_dropped")).Debug("fetch completed after teardown, ignoring")
		return
	}
	if c.state.Kind() != KindPending {
		c.mu.Unlock()
		return
	}
	c.state = next
	close(c.done)
	c.mu.Unlock()

	metrics.FetchState.Set(float64(next.Kind()))

	switch s := next.(type) {
	case Loaded:
		metrics.UsersLoaded.Set(float64(len(s.Users)))
		metrics.UpstreamFetchTotal.WithLabelValues("loaded").Inc()
		metrics.UpstreamFetchDurationSeconds.WithLabelValues("loaded").Observe(elapsed.Seconds())

		f := withAction(fields, "fetch_succeeded")
		f["users"] = len(s.Users)
		f["duration"] = elapsed
		c.log.WithFields(ctx, f).Info("user list loaded")
	case Failed:
		outcome := s.Reason.String() + "_error"
		metrics.UpstreamFetchTotal.WithLabelValues(outcome).Inc()
		metrics.UpstreamFetchDurationSeconds.WithLabelValues(outcome).Observe(elapsed.Seconds())

		f := withAction(fields, "fetch_failed")
		f["reason"] = s.Reason.String()
		f["duration"] = elapsed
		c.log.WithFields(ctx, f).Errorf("user list fetch failed: %v", s.Err)
	}
}

func settle(users []domain.User, err error) State {
	if err == nil {
		if users == nil {
			users = []domain.User{}
		}
		return Loaded{Users: users}
	}

	reason := FailureTransport
	if errors.Is(err, commonerrors.ErrInvalidUpstreamPayload) {
		reason = FailureDecode
	}

	message := err.Error()
	if de, ok := commonerrors.AsDomainError(err); ok {
		message = de.Message()
	}
	if message == "" {
		message = commonerrors.ErrUpstreamUnavailable.Message()
	}

	return Failed{Message: message, Reason: reason, Err: err}
}

func withAction(fields logger.Fields, action string) logger.Fields {
	out := make(logger.Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["action"] = action
	return out
}
