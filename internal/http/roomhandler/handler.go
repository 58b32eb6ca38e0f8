package roomhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bugbash/internal/ws"
)

type Handler struct {
	registry *ws.Registry
}

func New(registry *ws.Registry) *Handler { return &Handler{registry: registry} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/rooms/:id", h.info)
}

// info returns the current snapshot of a live room. The same payload clients
// get as the "state" message; handy when debugging a stuck session from the
// outside.
func (h *Handler) info(c *gin.Context) {
	room, ok := h.registry.Peek(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}
	snap, ok := room.Snapshot()
	if !ok {
		c.JSON(http.StatusGone, ErrorResponse{Error: "room shutting down"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
