package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mquinn/folio/backend/internal/models"
	"github.com/mquinn/folio/backend/internal/services"
)

// ProfileHandler serves the monolithic profile record.
type ProfileHandler struct {
	profile *services.ProfileService
	hub     *Hub
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profile *services.ProfileService, hub *Hub) *ProfileHandler {
	return &ProfileHandler{profile: profile, hub: hub}
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile := h.profile.Profile(c.Request.Context())
	if profile == nil {
		notFound(c, "profile not set")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Put handles PUT /api/profile; the blob is replaced wholesale.
func (h *ProfileHandler) Put(c *gin.Context) {
	var in models.Profile
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	saved, err := h.profile.SaveProfile(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.hub.Publish(EventProfileSaved, nil)
	c.JSON(http.StatusOK, saved)
}
