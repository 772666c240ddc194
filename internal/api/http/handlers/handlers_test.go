package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-service/internal/domain"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// memoryUserRepo is an in-memory user store for handler tests.
type memoryUserRepo struct {
	byID       map[int64]*domain.User
	byUsername map[string]*domain.User
	nextID     int64
}

func newMemoryUserRepo(users ...*domain.User) *memoryUserRepo {
	repo := &memoryUserRepo{
		byID:       make(map[int64]*domain.User),
		byUsername: make(map[string]*domain.User),
		nextID:     1,
	}
	for _, user := range users {
		repo.byID[user.ID] = user
		repo.byUsername[user.Username] = user
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
	}
	return repo
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byID[user.ID] = user
	r.byUsername[user.Username] = user
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[user.ID] = user
	r.byUsername[user.Username] = user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *memoryUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.byID))
	for _, user := range r.byID {
		users = append(users, *user)
	}
	return users, nil
}

// memoryPropertyRepo is an in-memory listing store for handler tests.
type memoryPropertyRepo struct {
	byID   map[int64]*domain.Property
	nextID int64
}

func newMemoryPropertyRepo() *memoryPropertyRepo {
	return &memoryPropertyRepo{byID: make(map[int64]*domain.Property), nextID: 1}
}

func (r *memoryPropertyRepo) Create(_ context.Context, property *domain.Property) error {
	property.ID = r.nextID
	r.nextID++
	copied := *property
	r.byID[property.ID] = &copied
	return nil
}

func (r *memoryPropertyRepo) Update(_ context.Context, property *domain.Property) error {
	if _, ok := r.byID[property.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *property
	r.byID[property.ID] = &copied
	return nil
}

func (r *memoryPropertyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryPropertyRepo) GetByID(_ context.Context, id int64) (*domain.Property, error) {
	property, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *property
	return &copied, nil
}

func (r *memoryPropertyRepo) OwnerID(_ context.Context, id int64) (int64, error) {
	property, ok := r.byID[id]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	return property.SellerID, nil
}

func (r *memoryPropertyRepo) ListAll(_ context.Context) ([]domain.Property, error) {
	properties := make([]domain.Property, 0, len(r.byID))
	for _, property := range r.byID {
		properties = append(properties, *property)
	}
	return properties, nil
}

func (r *memoryPropertyRepo) ListBySeller(_ context.Context, sellerID int64) ([]domain.Property, error) {
	var out []domain.Property
	for _, property := range r.byID {
		if property.SellerID == sellerID {
			out = append(out, *property)
		}
	}
	return out, nil
}

func (r *memoryPropertyRepo) ListVerified(_ context.Context) ([]domain.Property, error) {
	var out []domain.Property
	for _, property := range r.byID {
		if property.Verified {
			out = append(out, *property)
		}
	}
	return out, nil
}

// newTestApp builds a fiber app whose error handler mirrors the production
// error-mapping middleware closely enough to assert on codes and statuses.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error.Code
}

// multipartFile builds a multipart body carrying a single "file" part.
func multipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}
