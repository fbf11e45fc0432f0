package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/apperr"
	"inkwell/internal/services"
)

// multipart headers and boundaries on top of the file itself
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploads  *services.UploadService
	maxBytes int64
}

func NewUploadHandler(uploads *services.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploads: uploads, maxBytes: maxBytes}
}

// Upload handles POST /api/uploads with the image in form field "file".
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		renderError(c, apperr.Validation("File must be provided"))
		return
	}
	defer file.Close()

	url, err := h.uploads.Save(file, header.Size)
	if err != nil {
		renderError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"url": url})
}
