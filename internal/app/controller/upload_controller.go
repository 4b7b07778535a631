package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neonstore/neonstore-backend/internal/middleware"
	"github.com/neonstore/neonstore-backend/internal/storage"
)

// UploadController hands out pre-signed S3 URLs so admins can upload
// product images without the image bytes passing through the API.
type UploadController struct {
	assets *storage.AssetStorage
}

func NewUploadController(assets *storage.AssetStorage) *UploadController {
	return &UploadController{
		assets: assets,
	}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

// PresignProductImage generates a pre-signed upload URL for a product image (Admin only)
// POST /api/v1/upload/product-image
func (ctrl *UploadController) PresignProductImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presign request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := storage.ValidateFileSize(req.Size); err != nil {
		log.Warn("Image too large", map[string]interface{}{
			"filename": req.Filename,
			"size":     req.Size,
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image exceeds the maximum allowed size",
		})
		return
	}

	upload, err := ctrl.assets.PresignProductImage(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		log.Warn("Failed to presign product image upload", map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"error":        err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Only JPEG, PNG and WEBP images are allowed",
		})
		return
	}

	log.Info("Presigned product image upload", map[string]interface{}{
		"filename": req.Filename,
		"key":      upload.Key,
	})

	c.JSON(http.StatusOK, gin.H{
		"upload_url": upload.UploadURL,
		"file_url":   upload.FileURL,
		"key":        upload.Key,
	})
}
