package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AlibekovAA/profile-cards/internal/common/constants"
	commonerrors "github.com/AlibekovAA/profile-cards/internal/common/errors"
	"github.com/AlibekovAA/profile-cards/internal/profile/domain"
)

var errNullPayload = errors.New("payload is null, expected an array")

type UserSource interface {
	FetchUsers(ctx context.Context) ([]domain.User, error)
}

type HTTPSourceConfig struct {
	Endpoint         string
	Timeout          time.Duration
	MaxResponseBytes int64
	Client           *http.Client
}

// HTTPSource issues a plain GET against the users endpoint. Failures are
// returned as ErrUpstreamNotOK / ErrUpstreamUnavailable (transport) or
// ErrInvalidUpstreamPayload (decode).
type HTTPSource struct {
	endpoint string
	timeout  time.Duration
	maxBytes int64
	client   *http.Client
}

func NewHTTPSource(cfg HTTPSourceConfig) *HTTPSource {
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxResponseBytes
	}
	return &HTTPSource{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		maxBytes: maxBytes,
		client:   client,
	}
}

func (s *HTTPSource) Endpoint() string {
	return s.endpoint
}

func (s *HTTPSource) FetchUsers(ctx context.Context) ([]domain.User, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, commonerrors.ErrUpstreamUnavailable.WithCause(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, commonerrors.ErrUpstreamUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, s.maxBytes))
		return nil, commonerrors.ErrUpstreamNotOK.WithCause(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, commonerrors.ErrUpstreamUnavailable.WithCause(fmt.Errorf("read body: %w", err))
	}

	users, err := decodeUsers(body, s.maxBytes)
	if err != nil {
		return nil, commonerrors.ErrInvalidUpstreamPayload.WithCause(err)
	}
	return users, nil
}

func decodeUsers(body []byte, maxBytes int64) ([]domain.User, error) {
	if int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("body exceeds %d bytes", maxBytes)
	}

	var users []domain.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, err
	}
	if users == nil {
		return nil, errNullPayload
	}
	return users, nil
}
