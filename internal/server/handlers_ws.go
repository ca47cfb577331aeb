package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/Vaidiasri/linear-backend/internal/auth"
	"github.com/Vaidiasri/linear-backend/internal/domain"
	"github.com/Vaidiasri/linear-backend/internal/metrics"
	"github.com/Vaidiasri/linear-backend/internal/realtime"
)

const closeWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // browser clients connect from arbitrary origins
	},
}

// handleWebSocket is the realtime bootstrap: upgrade, authenticate, enroll,
// then block on the read pump until the peer disconnects.
//
// Authentication happens after the upgrade because the close handshake is the
// only channel that reaches browser clients: the token arrives as a query
// param, and a failed resolution is answered with close code 1008 and a
// generic reason that leaks nothing about why.
func (s *Server) handleWebSocket(c echo.Context) error {
	ip := c.RealIP()

	ok, reason := s.limits.Acquire(ip)
	if !ok {
		metrics.WebSocketRejections.WithLabelValues(string(reason)).Inc()
		slog.Warn("WebSocket connection rejected", "ip", ip, "reason", string(reason))
		return c.String(http.StatusTooManyRequests, "connection limit reached")
	}
	defer s.limits.Release(ip)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	identity, err := s.resolver.Resolve(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		rejectReason := "invalid_token"
		if errors.Is(err, auth.ErrNotEligible) {
			rejectReason = "not_eligible"
		}
		metrics.WebSocketRejections.WithLabelValues(rejectReason).Inc()
		slog.Info("WebSocket auth failed", "ip", ip, "reason", rejectReason)

		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "not authorized")
		_ = conn.WriteControl(websocket.CloseMessage, msg, s.clock.Now().Add(closeWriteTimeout))
		_ = conn.Close()
		return nil
	}

	ch := realtime.NewClientChannel(conn, s.clock, s.config.WSSendTimeout)

	class := "team"
	if identity.Kind == domain.IdentityAdmin {
		class = "admin"
		s.registry.RegisterAdmin(ch)
	} else {
		s.registry.RegisterTeamMember(identity.TeamID, ch)
	}
	metrics.WebSocketConnections.Inc()
	metrics.WebSocketEnrollments.WithLabelValues(class).Inc()
	slog.Info("WebSocket connected", "user_id", identity.UserID.String(), "class", class)

	// Cleanup is deferred so the registry entry cannot leak if anything below
	// panics; the registry tolerates a second removal from the failed-send path.
	defer func() {
		if identity.Kind == domain.IdentityAdmin {
			s.registry.DeregisterAdmin(ch)
		} else {
			s.registry.DeregisterTeamMember(identity.TeamID, ch)
		}
		_ = ch.Close()
		metrics.WebSocketConnections.Dec()
		slog.Info("WebSocket disconnected", "user_id", identity.UserID.String(), "class", class)
	}()

	// Read pump: inbound frames are discarded, but reading keeps pong
	// handling alive and detects disconnects. Blocks until the peer goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil //nolint:nilerr // disconnects are the normal exit path
		}
	}
}
