package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"bookstore/internal/book"
	"bookstore/internal/httpx"
	"bookstore/internal/store"
)

// SessionProvider hands out one store session per request.
type SessionProvider interface {
	Acquire(ctx context.Context) (store.Session, error)
}

// BookHandler translates HTTP requests into repository calls and typed
// outcomes back into status/payload pairs. No business logic lives here
// beyond input validation and outcome mapping.
type BookHandler struct {
	sessions SessionProvider
	repo     book.Repository
	logger   *zap.Logger
}

func NewBookHandler(sessions SessionProvider, repo book.Repository, logger *zap.Logger) *BookHandler {
	return &BookHandler{sessions: sessions, repo: repo, logger: logger}
}

type createBookReq struct {
	Title         string   `json:"title" validate:"required"`
	Author        string   `json:"author" validate:"required"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	PublishedYear *int     `json:"published_year"`
}

type updateBookReq struct {
	Title         *string  `json:"title" validate:"omitempty,min=1"`
	Author        *string  `json:"author" validate:"omitempty,min=1"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	PublishedYear *int     `json:"published_year"`
}

// Welcome answers the root path with a pointer at the books collection.
func (h *BookHandler) Welcome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the Book Store API",
		"endpoints": map[string]string{
			"books": "/books",
		},
	})
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	sess, err := h.sessions.Acquire(ctx)
	if err != nil {
		h.storeError(w, r, "acquire session", err)
		return
	}
	defer sess.Release()

	books, err := h.repo.List(ctx, sess)
	if err != nil {
		h.storeError(w, r, "list books", err)
		return
	}
	if books == nil {
		books = []book.Book{}
	}
	WriteJSON(w, http.StatusOK, books)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id, ok := bookID(w, ps)
	if !ok {
		return
	}

	sess, err := h.sessions.Acquire(ctx)
	if err != nil {
		h.storeError(w, r, "acquire session", err)
		return
	}
	defer sess.Release()

	b, err := h.repo.Get(ctx, sess, id)
	if err != nil {
		switch {
		case errors.Is(err, book.ErrNotFound):
			JSONError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("book with id %d not found", id), nil)
		default:
			h.storeError(w, r, "get book", err)
		}
		return
	}
	WriteJSON(w, http.StatusOK, b)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	sess, err := h.sessions.Acquire(ctx)
	if err != nil {
		h.storeError(w, r, "acquire session", err)
		return
	}
	defer sess.Release()

	var req createBookReq
	if !decodeBody(w, r, &req) {
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)

	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	created, err := h.repo.Create(ctx, sess, book.CreateParams{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Price:         req.Price,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		switch {
		case errors.Is(err, book.ErrInvalid):
			JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			h.storeError(w, r, "create book", err)
		}
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id, ok := bookID(w, ps)
	if !ok {
		return
	}

	sess, err := h.sessions.Acquire(ctx)
	if err != nil {
		h.storeError(w, r, "acquire session", err)
		return
	}
	defer sess.Release()

	var req updateBookReq
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if req.Author != nil {
		trimmed := strings.TrimSpace(*req.Author)
		req.Author = &trimmed
	}

	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	updated, err := h.repo.Update(ctx, sess, id, book.UpdateParams{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Price:         req.Price,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		switch {
		case errors.Is(err, book.ErrNotFound):
			JSONError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("book with id %d not found", id), nil)
		case errors.Is(err, book.ErrInvalid):
			JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		default:
			h.storeError(w, r, "update book", err)
		}
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id, ok := bookID(w, ps)
	if !ok {
		return
	}

	sess, err := h.sessions.Acquire(ctx)
	if err != nil {
		h.storeError(w, r, "acquire session", err)
		return
	}
	defer sess.Release()

	if err := h.repo.Delete(ctx, sess, id); err != nil {
		switch {
		case errors.Is(err, book.ErrNotFound):
			JSONError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("book with id %d not found", id), nil)
		default:
			h.storeError(w, r, "delete book", err)
		}
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("book with id %d deleted", id),
	})
}

// bookID parses the :id path segment. A non-integer segment can never
// name an existing book, so it reports 404 the same way a routing miss
// would.
func bookID(w http.ResponseWriter, ps httprouter.Params) (int64, bool) {
	raw := ps.ByName("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		JSONError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("book with id %q not found", raw), nil)
		return 0, false
	}
	return id, true
}

// decodeBody decodes the JSON request body, reporting type mismatches
// with the offending field named. Returns false if a response was
// already written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", []ErrorDetail{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
			}})
			return false
		}
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return false
	}
	return true
}

// storeError hides store-level detail from the client; it only reaches
// the server log.
func (h *BookHandler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error("store failure",
		zap.String("op", op),
		zap.String("request_id", httpx.RequestIDFrom(r)),
		zap.Error(err),
	)
	JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
