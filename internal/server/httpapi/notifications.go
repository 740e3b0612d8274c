package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adam9898/pw-manager-backend/internal/server/models"
)

// SubscribeNotifications handles GET /notifications/subscribe. It holds the
// connection open and streams every notification published while the client
// is connected as a server-sent event. Nothing is replayed: a client only
// sees what is published after it subscribed.
//
// Event frames are written by hand rather than through gin's SSE render,
// which would rewrite the content type with a charset suffix. Clients of
// the original service expect these headers byte for byte.
func (h *Handler) SubscribeNotifications(c *gin.Context) {
	if _, ok := CurrentUser(c); !ok {
		unauthorized(c)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.logger.Error(c.Request.Context(), "streaming not supported")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	c.Header("Connection", "keep-alive")
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeaderNow()
	flusher.Flush()

	ctx := c.Request.Context()
	ch, subID := h.bus.Subscribe(ctx)
	h.logger.Debug(ctx, "notification stream opened", "sub_id", subID)

	for {
		select {
		case <-ctx.Done():
			return
		case n, open := <-ch:
			if !open {
				return
			}
			if err := writeNotificationEvent(c.Writer, n); err != nil {
				h.logger.Error(ctx, "event write failed", "sub_id", subID, "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

// writeNotificationEvent emits one SSE frame carrying the notification as
// JSON.
func writeNotificationEvent(w http.ResponseWriter, n *models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: notification\ndata: %s\n\n", data)
	return err
}
