package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mquinn/folio/backend/internal/markdown"
	"github.com/mquinn/folio/backend/internal/services"
)

// BlogHandler serves blog CRUD and the public feed.
type BlogHandler struct {
	blogs *services.BlogService
	hub   *Hub
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(blogs *services.BlogService, hub *Hub) *BlogHandler {
	return &BlogHandler{blogs: blogs, hub: hub}
}

// List handles GET /api/blogs. With ?tag= it reads the tag's member set;
// with ?q= it searches title/excerpt/tags.
func (h *BlogHandler) List(c *gin.Context) {
	if tag := c.Query("tag"); tag != "" {
		c.JSON(http.StatusOK, h.blogs.BlogsByTag(c.Request.Context(), tag))
		return
	}
	if q := c.Query("q"); q != "" {
		c.JSON(http.StatusOK, h.blogs.SearchBlogs(c.Request.Context(), q))
		return
	}
	c.JSON(http.StatusOK, h.blogs.ListBlogs(c.Request.Context()))
}

// Published handles GET /api/blogs/published: the public feed with pinned
// posts leading.
func (h *BlogHandler) Published(c *gin.Context) {
	c.JSON(http.StatusOK, h.blogs.PublishedBlogs(c.Request.Context()))
}

// Get handles GET /api/blogs/:id.
func (h *BlogHandler) Get(c *gin.Context) {
	post := h.blogs.BlogByID(c.Request.Context(), c.Param("id"))
	if post == nil {
		notFound(c, "blog not found")
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetBySlug handles GET /api/blogs/slug/:slug, returning the record plus
// the rendered HTML the public site displays.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post := h.blogs.BlogBySlug(c.Request.Context(), c.Param("slug"))
	if post == nil {
		notFound(c, "blog not found")
		return
	}
	html, err := markdown.RenderHTML(post.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blog": post, "html": html})
}

// Create handles POST /api/blogs.
func (h *BlogHandler) Create(c *gin.Context) {
	var in services.CreateBlogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	post, err := h.blogs.CreateBlog(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.hub.Publish(EventBlogCreated, gin.H{"id": post.ID, "slug": post.Slug})
	c.JSON(http.StatusCreated, post)
}

// Update handles PATCH /api/blogs/:id.
func (h *BlogHandler) Update(c *gin.Context) {
	var in services.UpdateBlogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	post, err := h.blogs.UpdateBlog(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	if post == nil {
		notFound(c, "blog not found")
		return
	}
	h.hub.Publish(EventBlogUpdated, gin.H{"id": post.ID, "slug": post.Slug})
	c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /api/blogs/:id.
func (h *BlogHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.blogs.DeleteBlog(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if !deleted {
		notFound(c, "blog not found")
		return
	}
	h.hub.Publish(EventBlogDeleted, gin.H{"id": id})
	c.Status(http.StatusNoContent)
}
