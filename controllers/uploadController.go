package controllers

import (
	"os"
	"path/filepath"
	"strings"

	"ecotrack-backend/database"
	"ecotrack-backend/middlewares"
	"ecotrack-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedUploadExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
}

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// CreateUpload stores a proof file on local disk under a generated name and
// records its metadata. The returned attachment id links it to an activity.
func CreateUpload(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	file, err := c.FormFile("file")
	if err != nil {
		return middlewares.Fail(c, fiber.StatusBadRequest, "file field is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowedUploadExts[ext]
	if !ok {
		return middlewares.Fail(c, fiber.StatusBadRequest, "unsupported file type")
	}

	dir := uploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not prepare upload directory")
	}

	storedPath := filepath.Join(dir, uuid.NewString()+ext)
	if err := c.SaveFile(file, storedPath); err != nil {
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not store file")
	}

	attachment := models.Attachment{
		OwnerId:     userID,
		FileName:    filepath.Base(file.Filename),
		StoredPath:  storedPath,
		Size:        file.Size,
		ContentType: contentType,
	}
	if err := database.DB.Create(&attachment).Error; err != nil {
		// orphaned file is harmless; the metadata row is the source of truth
		_ = os.Remove(storedPath)
		return middlewares.Fail(c, fiber.StatusInternalServerError, "could not record upload")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"attachment": attachment,
	})
}

// GetUpload streams a stored file back to its owner (or an admin).
func GetUpload(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("role").(string)

	var attachment models.Attachment
	if err := database.DB.First(&attachment, "id = ?", c.Params("id")).Error; err != nil {
		return middlewares.Fail(c, fiber.StatusNotFound, "attachment not found")
	}
	if attachment.OwnerId != userID && role != models.RoleAdmin {
		return middlewares.Fail(c, fiber.StatusForbidden, "not your attachment")
	}

	c.Set(fiber.HeaderContentType, attachment.ContentType)
	return c.SendFile(attachment.StoredPath)
}
