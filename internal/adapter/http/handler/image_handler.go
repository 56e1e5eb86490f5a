package handler

import (
	"io"

	"marketplace-sync/internal/core/domain"
	"marketplace-sync/internal/core/ports"
	"marketplace-sync/pkg/apperror"
	"marketplace-sync/pkg/response"

	"github.com/gin-gonic/gin"
)

// ImageHandler accepts image uploads for later listing.
type ImageHandler struct {
	svc     ports.MarketplaceService
	maxSize int64
}

// NewImageHandler creates a new ImageHandler; files above maxSize bytes are refused.
func NewImageHandler(svc ports.MarketplaceService, maxSize int64) *ImageHandler {
	return &ImageHandler{svc: svc, maxSize: maxSize}
}

// Upload handles POST /api/v1/images (multipart field "file").
func (h *ImageHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, bindError(err))
		return
	}
	if h.maxSize > 0 && fh.Size > h.maxSize {
		response.Error(c, apperror.ErrPayloadTooLarge(h.maxSize))
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, bindError(err))
		return
	}

	res, err := h.svc.UploadImage(c.Request.Context(), domain.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	operationOutcome(c, res, err, true)
}
