package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"mireparto/internal/apierror"
	"mireparto/internal/middleware"
	"mireparto/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// keepAlive is how often an idle stream sends a ping so proxies keep it open.
var keepAlive = 25 * time.Second

// streamSnapshots serves a collection as Server-Sent Events: one "snapshot"
// with the full ordered list on connect and another after every change.
// The subscription is released when the client disconnects.
func streamSnapshots(c *gin.Context, n realtime.Notifier, coleccion string, fetch func(context.Context) (any, error)) {
	ctx := c.Request.Context()
	logger := log.With().
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("coleccion", coleccion).
		Logger()

	cambios, cancel, err := n.Subscribe(ctx, coleccion)
	if err != nil {
		logger.Error().Err(err).Msg("stream: subscribe failed")
		c.JSON(http.StatusServiceUnavailable, apierror.New("Actualizaciones en tiempo real no disponibles"))
		return
	}
	defer cancel()

	snapshot, err := fetch(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("stream: initial snapshot failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", snapshot)
	c.Writer.Flush()

	ping := time.NewTicker(keepAlive)
	defer ping.Stop()

	logger.Debug().Msg("stream: client subscribed")
	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-cambios:
			if !ok {
				return false
			}
			snapshot, err := fetch(ctx)
			if err != nil {
				// keep the stream; the next change retries
				logger.Error().Err(err).Msg("stream: snapshot failed")
				return true
			}
			c.SSEvent("snapshot", snapshot)
			return true
		case <-ping.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
	logger.Debug().Msg("stream: client gone")
}
