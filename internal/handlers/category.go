package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/services"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusOK, categories)
}
