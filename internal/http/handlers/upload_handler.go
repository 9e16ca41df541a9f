package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "goldleaf/internal/log"
)

type UploadHandler struct {
	MediaDir string
}

var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// POST /api/admin/upload takes a multipart field "image" and returns the public URL.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "missing image file")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		applog.Security(c, "upload.reject", map[string]any{"ext": ext})
		return jsonError(c, fiber.StatusBadRequest, "unsupported image type")
	}

	name := uuid.NewString() + ext
	dest := filepath.Join(h.MediaDir, "products", name)
	if err := c.SaveFile(file, dest); err != nil {
		applog.Error(c, "upload.save.fail", err, map[string]any{"file": name})
		return jsonError(c, fiber.StatusInternalServerError, "could not save image")
	}

	applog.Audit(c, "upload.save", map[string]any{"file": name, "size": file.Size})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": "/media/products/" + name})
}
