package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mquinn/folio/backend/internal/models"
	"github.com/mquinn/folio/backend/internal/services"
)

// ReadingHandler serves the reading list.
type ReadingHandler struct {
	readings *services.ReadingService
	hub      *Hub
}

// NewReadingHandler creates a ReadingHandler.
func NewReadingHandler(readings *services.ReadingService, hub *Hub) *ReadingHandler {
	return &ReadingHandler{readings: readings, hub: hub}
}

// List handles GET /api/readings. With ?type= it reads the type's member
// set; with ?q= it searches title/author.
func (h *ReadingHandler) List(c *gin.Context) {
	if t := c.Query("type"); t != "" {
		c.JSON(http.StatusOK, h.readings.ReadingsByType(c.Request.Context(), models.ReadingType(t)))
		return
	}
	if q := c.Query("q"); q != "" {
		c.JSON(http.StatusOK, h.readings.SearchReadings(c.Request.Context(), q))
		return
	}
	c.JSON(http.StatusOK, h.readings.ListReadings(c.Request.Context()))
}

// Get handles GET /api/readings/:id.
func (h *ReadingHandler) Get(c *gin.Context) {
	entry := h.readings.ReadingByID(c.Request.Context(), c.Param("id"))
	if entry == nil {
		notFound(c, "reading not found")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetBySlug handles GET /api/readings/slug/:slug.
func (h *ReadingHandler) GetBySlug(c *gin.Context) {
	entry := h.readings.ReadingBySlug(c.Request.Context(), c.Param("slug"))
	if entry == nil {
		notFound(c, "reading not found")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Create handles POST /api/readings.
func (h *ReadingHandler) Create(c *gin.Context) {
	var in services.CreateReadingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	entry, err := h.readings.CreateReading(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.hub.Publish(EventReadingSaved, gin.H{"id": entry.ID})
	c.JSON(http.StatusCreated, entry)
}

// Update handles PATCH /api/readings/:id.
func (h *ReadingHandler) Update(c *gin.Context) {
	var in services.UpdateReadingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	entry, err := h.readings.UpdateReading(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	if entry == nil {
		notFound(c, "reading not found")
		return
	}
	h.hub.Publish(EventReadingSaved, gin.H{"id": entry.ID})
	c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /api/readings/:id.
func (h *ReadingHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.readings.DeleteReading(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if !deleted {
		notFound(c, "reading not found")
		return
	}
	h.hub.Publish(EventReadingGone, gin.H{"id": id})
	c.Status(http.StatusNoContent)
}

// Reorder handles PUT /api/readings/order with {"ids": [...]}.
func (h *ReadingHandler) Reorder(c *gin.Context) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.IDs) == 0 {
		badRequest(c, "ids is required")
		return
	}
	ok := h.readings.Reorder(c.Request.Context(), body.IDs)
	h.hub.Publish(EventOrderRewritten, gin.H{"entity": "reading"})
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}
