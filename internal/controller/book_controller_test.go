package controller

import (
	"context"
	"net/http"
	"testing"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBooks struct {
	generateErr error
	req         *dto.GenerateBookRequest
	books       map[uuid.UUID]dto.BookResponse
}

func (f *fakeBooks) Generate(ctx context.Context, owner entity.OwnerID, req *dto.GenerateBookRequest) (*dto.BookResponse, error) {
	f.req = req
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return &dto.BookResponse{Id: uuid.New(), Title: req.Title, Status: string(entity.BookStatusDraft)}, nil
}

func (f *fakeBooks) List(ctx context.Context, owner entity.OwnerID) ([]dto.BookResponse, error) {
	out := make([]dto.BookResponse, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBooks) Get(ctx context.Context, owner entity.OwnerID, id uuid.UUID) (*dto.BookResponse, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, service.ErrBookNotFound
	}
	return &b, nil
}

func newBookApp(books *fakeBooks) *fiber.App {
	app := newApp()
	NewBookController(books).RegisterRoutes(app, asOwner(entity.OwnerID(uuid.New()), ""))
	return app
}

func TestGenerateBook(t *testing.T) {
	books := &fakeBooks{}
	app := newBookApp(books)

	code, body := doJSON(t, app, http.MethodPost, "/books", `{"title":"The Lighthouse","prompt":"A keeper finds a map","chapter_count":3}`, nil)

	assert.Equal(t, http.StatusCreated, code)
	require.NotNil(t, books.req)
	assert.Equal(t, 3, books.req.ChapterCount)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "The Lighthouse", data["title"])
}

func TestGenerateBookErrors(t *testing.T) {
	app := newBookApp(&fakeBooks{})
	code, _ := doJSON(t, app, http.MethodPost, "/books", `{"title":"No prompt"}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	app = newBookApp(&fakeBooks{generateErr: service.ErrBookLimitReached})
	code, body := doJSON(t, app, http.MethodPost, "/books", `{"title":"T","prompt":"P"}`, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, service.ErrBookLimitReached.Error(), body["message"])
}

func TestShowBook(t *testing.T) {
	id := uuid.New()
	app := newBookApp(&fakeBooks{books: map[uuid.UUID]dto.BookResponse{id: {Id: id, Title: "Kept"}}})

	code, _ := doJSON(t, app, http.MethodGet, "/books/"+id.String(), "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doJSON(t, app, http.MethodGet, "/books/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doJSON(t, app, http.MethodGet, "/books/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
