package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/services"
)

type PostHandler struct {
	content *services.ContentService
}

func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

// List handles GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.content.List(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusOK, posts)
}

// Search handles GET /api/posts/search?q=
func (h *PostHandler) Search(c *gin.Context) {
	posts, err := h.content.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusOK, posts)
}

// ListByCategory handles GET /api/categories/:slug/posts
func (h *PostHandler) ListByCategory(c *gin.Context) {
	posts, err := h.content.ListByCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusOK, posts)
}

// GetBySlug handles GET /api/posts/slug/:slug
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.content.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusOK, post)
}

// Mine handles GET /api/me/posts
func (h *PostHandler) Mine(c *gin.Context) {
	posts, err := h.content.MyPosts(c.Request.Context(), currentUser(c))
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusOK, posts)
}

// GetByID handles GET /api/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	post, err := h.content.GetByID(c.Request.Context(), currentUser(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusOK, post)
}

// Create handles POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var in services.CreatePostInput
	if err := bindJSON(c, &in); err != nil {
		renderError(c, err)
		return
	}
	post, err := h.content.Create(c.Request.Context(), currentUser(c), in)
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusCreated, post)
}

// Update handles PATCH /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	var in services.UpdatePostInput
	if err := bindJSON(c, &in); err != nil {
		renderError(c, err)
		return
	}
	post, err := h.content.Update(c.Request.Context(), currentUser(c), id, in)
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusOK, post)
}

// TogglePublish handles POST /api/posts/:id/toggle-publish
func (h *PostHandler) TogglePublish(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	post, err := h.content.TogglePublish(c.Request.Context(), currentUser(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.content.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		renderError(c, err)
		return
	}
	ack(c, "Post deleted successfully")
}
