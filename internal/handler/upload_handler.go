package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adnane-lakhmaisse/OptiStock/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UploadHandler stores product images on local disk and serves back a
// public path
type UploadHandler struct {
	cfg    config.UploadConfig
	logger *zap.Logger
}

func NewUploadHandler(cfg config.UploadConfig, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{cfg: cfg, logger: logger}
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "No image file provided."})
	}
	if file.Size > int64(h.cfg.MaxSizeMB)*1024*1024 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": fmt.Sprintf("Image exceeds the %d MB limit.", h.cfg.MaxSizeMB),
		})
	}

	if err := os.MkdirAll(h.cfg.Dir, 0755); err != nil {
		h.logger.Error("upload dir create failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to save image."})
	}

	ext := filepath.Ext(file.Filename)
	uniqueName := fmt.Sprintf("image_%s%s", uuid.New().String(), ext)
	if err := c.SaveFile(file, filepath.Join(h.cfg.Dir, uniqueName)); err != nil {
		h.logger.Error("image save failed", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to save image."})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"image_url": h.cfg.PublicPath + "/" + uniqueName,
	})
}

type deleteImageRequest struct {
	Path string `json:"path"`
}

func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	var req deleteImageRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "No image path provided."})
	}

	// Only paths under the public prefix are deletable, and the
	// cleaned name must not escape the uploads directory
	name := strings.TrimPrefix(req.Path, h.cfg.PublicPath+"/")
	if name == req.Path || name != filepath.Base(name) {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid image path."})
	}

	filePath := filepath.Join(h.cfg.Dir, name)
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": "Image file does not exist."})
		}
		h.logger.Error("image delete failed", zap.String("path", filePath), zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to delete image."})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Image deleted successfully."})
}
