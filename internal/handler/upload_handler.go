package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

// UploadHandler stores product images on local disk and returns the
// public URL under which the server serves them
type UploadHandler struct {
	Dir     string
	BaseURL string
}

// NewUploadHandler creates an upload handler writing into dir
func NewUploadHandler(dir, baseURL string) *UploadHandler {
	return &UploadHandler{Dir: dir, BaseURL: baseURL}
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadImage accepts a multipart image file and returns its public URL,
// to be attached to a product's image list or color-image mapping
func (h *UploadHandler) UploadImage(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("image_upload")

	file, err := c.FormFile("file")
	if err != nil {
		log.Error("Missing file in upload request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported image type"})
	}

	src, err := file.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		log.Error("Failed to create upload directory", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}

	name := uuid.New().String() + ext
	path := filepath.Join(h.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		log.Error("Failed to create image file", zap.String("path", path), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		log.Error("Failed to write image file", zap.String("path", path), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(h.BaseURL, "/"), name)
	log.Info("Image uploaded",
		zap.String("file", name),
		zap.Int64("size", file.Size))
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
