package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/logtide/logtide/internal/window"
)

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "logtide",
		"endpoints": gin.H{
			"start_run": "GET /logs?container_id=<id>&start_time=<rfc3339>&end_time=<rfc3339>",
			"live_tail": "GET /logs/stream?container_id=<id>&start_time=<rfc3339>&end_time=<rfc3339>",
			"health":    "GET /health",
			"metrics":   "GET /metrics",
		},
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "logtide",
	})
}

// startTail launches a pipeline run in the background and acknowledges
// immediately. Per-record failures surface via logs and metrics, never
// here; only parameter problems produce an error response.
func (s *Server) startTail(c *gin.Context) {
	sourceID, win, ok := s.tailParams(c)
	if !ok {
		return
	}

	p, cleanup := s.newRun()
	go func() {
		defer cleanup()
		if err := p.Run(context.Background(), sourceID, win); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("pipeline run failed",
				zap.String("source", sourceID),
				zap.Error(err),
			)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"status":     "accepted",
		"source":     sourceID,
		"start_time": win.Start.Format(time.RFC3339),
		"end_time":   win.End.Format(time.RFC3339),
	})
}

// tailParams parses and validates the run parameters shared by /logs
// and /logs/stream. On failure it writes the error response and
// returns ok=false.
func (s *Server) tailParams(c *gin.Context) (string, window.Window, bool) {
	sourceID := c.Query("container_id")
	if sourceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "container_id is required"})
		return "", window.Window{}, false
	}

	start, err := time.Parse(time.RFC3339, c.Query("start_time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be an RFC3339 timestamp"})
		return "", window.Window{}, false
	}

	end, err := time.Parse(time.RFC3339, c.Query("end_time"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_time must be an RFC3339 timestamp"})
		return "", window.Window{}, false
	}

	return sourceID, window.Window{Start: start.UTC(), End: end.UTC()}, true
}
