package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	gorillaWS "github.com/gorilla/websocket"

	"github.com/AlibekovAA/profile-cards/internal/common/constants"
	"github.com/AlibekovAA/profile-cards/internal/common/logger"
	"github.com/AlibekovAA/profile-cards/internal/observability/metrics"
	"github.com/AlibekovAA/profile-cards/internal/profile/fetch"
)

// stream pushes the current snapshot and, while the fetch is pending, waits
// for the transition and pushes the terminal snapshot before closing.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		metrics.WebSocketErrors.WithLabelValues("upgrade").Inc()
		h.log.WithFields(ctx, logger.Fields{"action": "ws_upgrade_failed"}).Warnf("state stream upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	metrics.WebSocketConnectionsActive.Inc()
	defer metrics.WebSocketConnectionsActive.Dec()

	gone := make(chan struct{})
	go readUntilClosed(conn, gone)

	current := h.states.State()
	if !h.send(ctx, conn, current) {
		return
	}

	closeCode := gorillaWS.CloseNormalClosure
	if current.Kind() == fetch.KindPending {
		closeCode = h.awaitTransition(ctx, conn, gone)
		if closeCode == 0 {
			return
		}
	}

	_ = conn.WriteControl(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(closeCode, ""), writeDeadline())
}

// awaitTransition returns the close code to send, or 0 when the peer is gone.
func (h *Handler) awaitTransition(ctx context.Context, conn *gorillaWS.Conn, gone <-chan struct{}) int {
	ticker := time.NewTicker(constants.WebSocketPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-h.states.Done():
			if !h.send(ctx, conn, h.states.State()) {
				return 0
			}
			return gorillaWS.CloseNormalClosure
		case <-h.closing:
			return gorillaWS.CloseGoingAway
		case <-gone:
			return 0
		case <-ticker.C:
			if err := conn.WriteControl(gorillaWS.PingMessage, nil, writeDeadline()); err != nil {
				metrics.WebSocketErrors.WithLabelValues("ping").Inc()
				return 0
			}
		}
	}
}

func (h *Handler) send(ctx context.Context, conn *gorillaWS.Conn, s fetch.State) bool {
	payload, err := json.Marshal(newSnapshot(s))
	if err != nil {
		metrics.WebSocketErrors.WithLabelValues("marshal").Inc()
		return false
	}

	conn.SetWriteDeadline(writeDeadline())
	if err := conn.WriteMessage(gorillaWS.TextMessage, payload); err != nil {
		metrics.WebSocketErrors.WithLabelValues("write").Inc()
		h.log.WithFields(ctx, logger.Fields{"action": "ws_write_failed"}).Warnf("state stream write failed: %v", err)
		return false
	}
	return true
}

func readUntilClosed(conn *gorillaWS.Conn, gone chan<- struct{}) {
	defer close(gone)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(constants.WebSocketPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(constants.WebSocketPongWait))
		return nil
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
