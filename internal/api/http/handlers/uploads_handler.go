package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/config"
	"github.com/spec-kit/listing-service/internal/service"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

var (
	allowedImageExts = map[string]struct{}{".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}}
	allowedDocExts   = map[string]struct{}{".pdf": {}, ".png": {}, ".jpg": {}, ".jpeg": {}}
)

// UploadsHandler stores listing images and verification documents on disk.
type UploadsHandler struct {
	properties *service.PropertyService
	cfg        config.UploadConfig
}

// NewUploadsHandler constructs handler.
func NewUploadsHandler(propertyService *service.PropertyService, cfg config.UploadConfig) *UploadsHandler {
	return &UploadsHandler{properties: propertyService, cfg: cfg}
}

// UploadImage handles POST /properties/:id/upload_image.
func (h *UploadsHandler) UploadImage(c *fiber.Ctx) error {
	id, err := propertyID(c)
	if err != nil {
		return err
	}
	filename, err := h.saveUpload(c, h.cfg.ImagesDir, allowedImageExts)
	if err != nil {
		return err
	}

	property, err := h.properties.SetImageURL(c.Context(), id, "/uploads/images/"+filename)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"image_url": property.ImageURL})
}

// UploadDocs handles POST /properties/:id/upload_docs. Uploading new
// documents puts the listing back into the unverified state.
func (h *UploadsHandler) UploadDocs(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewMissingToken()
	}
	id, err := propertyID(c)
	if err != nil {
		return err
	}
	filename, err := h.saveUpload(c, h.cfg.DocsDir, allowedDocExts)
	if err != nil {
		return err
	}

	property, err := h.properties.AttachDocs(c.Context(), principal.User, id, "/uploads/docs/"+filename)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"docs_url": property.DocsURL,
		"verified": property.Verified,
	})
}

func (h *UploadsHandler) saveUpload(c *fiber.Ctx, dir string, allowed map[string]struct{}) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", apperrors.NewValidationError("no file part", nil)
	}
	if file.Filename == "" {
		return "", apperrors.NewValidationError("no selected file", nil)
	}
	if h.cfg.MaxBytes > 0 && file.Size > int64(h.cfg.MaxBytes) {
		return "", apperrors.NewValidationError("file too large", nil)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowed[ext]; !ok {
		return "", apperrors.NewValidationError("file type not allowed", nil)
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return filename, nil
}
