package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mquinn/folio/backend/internal/services"
)

// AdminHandler serves dashboard categories and sections.
type AdminHandler struct {
	admin *services.AdminService
	hub   *Hub
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin *services.AdminService, hub *Hub) *AdminHandler {
	return &AdminHandler{admin: admin, hub: hub}
}

// ListCategories handles GET /api/admin/categories; ?all=true includes
// inactive categories for the dashboard.
func (h *AdminHandler) ListCategories(c *gin.Context) {
	if c.Query("all") == "true" {
		c.JSON(http.StatusOK, h.admin.ListAllCategories(c.Request.Context()))
		return
	}
	c.JSON(http.StatusOK, h.admin.ListCategories(c.Request.Context()))
}

// CreateCategory handles POST /api/admin/categories.
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var in services.CreateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	cat, err := h.admin.CreateCategory(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.hub.Publish(EventAdminChanged, gin.H{"categoryId": cat.ID})
	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory handles PATCH /api/admin/categories/:id.
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	var in services.UpdateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	cat, err := h.admin.UpdateCategory(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	if cat == nil {
		notFound(c, "category not found")
		return
	}
	h.hub.Publish(EventAdminChanged, gin.H{"categoryId": cat.ID})
	c.JSON(http.StatusOK, cat)
}

// DeleteCategory handles DELETE /api/admin/categories/:id; its sections go
// with it.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.admin.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if !deleted {
		notFound(c, "category not found")
		return
	}
	h.hub.Publish(EventAdminChanged, gin.H{"categoryId": id})
	c.Status(http.StatusNoContent)
}

// ReorderCategories handles PUT /api/admin/categories/order.
func (h *AdminHandler) ReorderCategories(c *gin.Context) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.IDs) == 0 {
		badRequest(c, "ids is required")
		return
	}
	ok := h.admin.ReorderCategories(c.Request.Context(), body.IDs)
	h.hub.Publish(EventOrderRewritten, gin.H{"entity": "category"})
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}

// ListSections handles GET /api/admin/categories/:id/sections.
func (h *AdminHandler) ListSections(c *gin.Context) {
	c.JSON(http.StatusOK, h.admin.SectionsByCategory(c.Request.Context(), c.Param("id")))
}

// ListAllSections handles GET /api/admin/sections.
func (h *AdminHandler) ListAllSections(c *gin.Context) {
	c.JSON(http.StatusOK, h.admin.ListAllSections(c.Request.Context()))
}

// CreateSection handles POST /api/admin/sections.
func (h *AdminHandler) CreateSection(c *gin.Context) {
	var in services.CreateSectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	section, err := h.admin.CreateSection(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.hub.Publish(EventAdminChanged, gin.H{"sectionId": section.ID})
	c.JSON(http.StatusCreated, section)
}

// UpdateSection handles PATCH /api/admin/sections/:id.
func (h *AdminHandler) UpdateSection(c *gin.Context) {
	var in services.UpdateSectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	section, err := h.admin.UpdateSection(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	if section == nil {
		notFound(c, "section not found")
		return
	}
	h.hub.Publish(EventAdminChanged, gin.H{"sectionId": section.ID})
	c.JSON(http.StatusOK, section)
}

// DeleteSection handles DELETE /api/admin/sections/:id.
func (h *AdminHandler) DeleteSection(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.admin.DeleteSection(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if !deleted {
		notFound(c, "section not found")
		return
	}
	h.hub.Publish(EventAdminChanged, gin.H{"sectionId": id})
	c.Status(http.StatusNoContent)
}

// ReorderSections handles PUT /api/admin/categories/:id/sections/order.
func (h *AdminHandler) ReorderSections(c *gin.Context) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.IDs) == 0 {
		badRequest(c, "ids is required")
		return
	}
	ok := h.admin.ReorderSections(c.Request.Context(), c.Param("id"), body.IDs)
	h.hub.Publish(EventOrderRewritten, gin.H{"entity": "section"})
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}
