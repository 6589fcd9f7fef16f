package ws

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/logtide/logtide/internal/logging"
	"github.com/logtide/logtide/internal/monitoring"
	"github.com/logtide/logtide/internal/pipeline"
	"github.com/logtide/logtide/internal/record"
	"github.com/logtide/logtide/internal/window"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// RunFactory builds a pipeline run and its cleanup function.
type RunFactory func() (*pipeline.Pipeline, func() error)

// Handler manages live-tail WebSocket connections.
type Handler struct {
	newRun  RunFactory
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler.
func NewHandler(newRun RunFactory, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	return &Handler{
		newRun:  newRun,
		logger:  logger,
		metrics: metrics,
	}
}

// Stream upgrades the connection, starts a pipeline run for the given
// source and window, and forwards every matched record as one text
// frame until the stream ends or the client goes away.
func (h *Handler) Stream(c *gin.Context, sourceID string, win window.Window) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	p, cleanup := h.newRun()
	sub := p.Subscribe(256)

	runDone := make(chan error, 1)
	go func() {
		defer cleanup()
		runDone <- p.Run(ctx, sourceID, win)
	}()

	// The client sends nothing meaningful; reading only detects when
	// it hangs up so the run can be canceled.
	go func() {
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				cancel()
				return
			}
		}
	}()

	for rec := range sub.C() {
		payload, encErr := record.Encode(rec)
		if encErr != nil {
			h.logger.Warn("failed to encode record for client", zap.Error(encErr))
			continue
		}
		if writeErr := conn.WriteMessage(websocket.TextMessage, payload); writeErr != nil {
			cancel()
			break
		}
	}

	if runErr := <-runDone; runErr != nil && !errors.Is(runErr, context.Canceled) {
		h.sendError(conn, runErr.Error())
		return
	}

	conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stream ended"),
	)
}

func (h *Handler) sendError(conn *websocket.Conn, msg string) {
	conn.WriteJSON(map[string]interface{}{
		"type":    "error",
		"message": msg,
	})
}
