package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/config"
	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/service"
)

type uploadsTestEnv struct {
	app        *fiber.App
	properties *memoryPropertyRepo
	token      string
	cfg        config.UploadConfig
}

func newUploadsTestEnv(t *testing.T, maxBytes int) *uploadsTestEnv {
	t.Helper()

	seller := &domain.User{ID: 7, Username: "sara", Role: domain.RoleSeller}
	users := newMemoryUserRepo(seller)
	properties := newMemoryPropertyRepo()
	require.NoError(t, properties.Create(nil, &domain.Property{
		Title:    "Canal house",
		Price:    450000,
		SellerID: seller.ID,
		Verified: true,
	}))

	tm := auth.NewTokenManager("test-secret", time.Hour)
	token, _, err := tm.Issue(seller)
	require.NoError(t, err)

	cfg := config.UploadConfig{
		ImagesDir: t.TempDir(),
		DocsDir:   t.TempDir(),
		MaxBytes:  maxBytes,
	}
	handler := NewUploadsHandler(service.NewPropertyService(properties, nil), cfg)
	mw := auth.NewMiddleware(tm, users)

	app := newTestApp()
	app.Post("/properties/:id/upload_image", mw.Handle, handler.UploadImage)
	app.Post("/properties/:id/upload_docs", mw.Handle, handler.UploadDocs)

	return &uploadsTestEnv{app: app, properties: properties, token: token, cfg: cfg}
}

func (e *uploadsTestEnv) post(t *testing.T, path, filename string, content []byte) *http.Response {
	t.Helper()
	body, contentType := multipartFile(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+e.token)
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestUploadImageStoresFileAndSetsURL(t *testing.T) {
	env := newUploadsTestEnv(t, 1024)

	resp := env.post(t, "/properties/1/upload_image", "front.png", []byte("fake image bytes"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	property, err := env.properties.GetByID(nil, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(property.ImageURL, "/uploads/images/"))
	assert.True(t, strings.HasSuffix(property.ImageURL, ".png"))

	entries, err := os.ReadDir(env.cfg.ImagesDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUploadImageRejectsDisallowedExtension(t *testing.T) {
	env := newUploadsTestEnv(t, 1024)

	resp := env.post(t, "/properties/1/upload_image", "deed.pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, resp))

	property, err := env.properties.GetByID(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, property.ImageURL)
}

func TestUploadDocsResetsVerification(t *testing.T) {
	env := newUploadsTestEnv(t, 1024)

	resp := env.post(t, "/properties/1/upload_docs", "deed.pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	property, err := env.properties.GetByID(nil, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(property.DocsURL, "/uploads/docs/"))
	assert.False(t, property.Verified)

	entries, err := os.ReadDir(env.cfg.DocsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUploadDocsRejectsDisallowedExtension(t *testing.T) {
	env := newUploadsTestEnv(t, 1024)

	// gif is fine for listing images but not for verification documents
	resp := env.post(t, "/properties/1/upload_docs", "deed.gif", []byte("GIF89a"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, resp))

	property, err := env.properties.GetByID(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, property.DocsURL)
	assert.True(t, property.Verified)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	env := newUploadsTestEnv(t, 16)

	oversized := make([]byte, 64)
	resp := env.post(t, "/properties/1/upload_image", "front.png", oversized)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, resp))

	entries, err := os.ReadDir(env.cfg.ImagesDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadRejectsMissingFilePart(t *testing.T) {
	env := newUploadsTestEnv(t, 1024)

	// multipart body whose only part is not named "file"
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("attachment", "front.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/properties/1/upload_image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+env.token)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, resp))
}
