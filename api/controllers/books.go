package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/litera-id/litera-backend/api/responses"
	"github.com/litera-id/litera-backend/api/validators"
	booksvc "github.com/litera-id/litera-backend/internal/books"
	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/logger"
)

const maxCoverBytes = 5 << 20

// ListBooks returns one page of the catalog.
func ListBooks(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters := booksvc.ListFilters{
			Search:   validators.SanitizeString(r.URL.Query().Get("search"), 120),
			Category: validators.SanitizeString(r.URL.Query().Get("category"), 60),
		}

		books, meta, err := svc.ListBooks(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, "books", books, meta)
	}
}

// GetBook returns a single catalog entry by ISBN.
func GetBook(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		isbn, err := isbnParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.GetBook(r.Context(), isbn)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "book", book)
	}
}

type createBookRequest struct {
	ISBN        string `json:"isbn" validate:"required,len=13,numeric"`
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Publisher   string `json:"publisher" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	Stock       int    `json:"stock" validate:"min=0"`
}

// CreateBook adds a catalog entry.
func CreateBook(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		var payload createBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.CreateBook(r.Context(), booksvc.CreateBookInput{
			ISBN:        payload.ISBN,
			Title:       payload.Title,
			Author:      payload.Author,
			Publisher:   payload.Publisher,
			Category:    payload.Category,
			Description: payload.Description,
			Stock:       payload.Stock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "book created", book)
	}
}

type updateBookRequest struct {
	Title       *string `json:"title,omitempty"`
	Author      *string `json:"author,omitempty"`
	Publisher   *string `json:"publisher,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Stock       *int    `json:"stock,omitempty" validate:"omitempty,min=0"`
}

// UpdateBook applies a partial update to a catalog entry.
func UpdateBook(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		isbn, err := isbnParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateBookRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		book, err := svc.UpdateBook(r.Context(), isbn, booksvc.UpdateBookInput{
			Title:       payload.Title,
			Author:      payload.Author,
			Publisher:   payload.Publisher,
			Category:    payload.Category,
			Description: payload.Description,
			Stock:       payload.Stock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "book updated", book)
	}
}

// DeleteBook soft-deletes a catalog entry.
func DeleteBook(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		isbn, err := isbnParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteBook(r.Context(), isbn); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "book deleted", nil)
	}
}

// UploadBookCover stores a cover image and records its key on the book.
func UploadBookCover(svc booksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "book service unavailable"))
			return
		}

		isbn, err := isbnParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(maxCoverBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		file, header, err := r.FormFile("cover")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cover file is required").
				WithDetails(map[string][]string{"cover": {"is required"}}))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cover must be an image").
				WithDetails(map[string][]string{"cover": {"must be an image"}}))
			return
		}

		book, err := svc.UploadCover(r.Context(), isbn, booksvc.CoverUpload{
			ContentType: contentType,
			Body:        file,
			Size:        header.Size,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "cover uploaded", book)
	}
}

func isbnParam(r *http.Request) (string, error) {
	isbn := strings.TrimSpace(chi.URLParam(r, "isbn"))
	if len(isbn) != 13 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "isbn must be 13 characters").
			WithDetails(map[string][]string{"isbn": {"must be exactly 13 characters"}})
	}
	return isbn, nil
}
