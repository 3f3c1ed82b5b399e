package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/skywebdev/server/internal/api/pagination"
	"github.com/skywebdev/server/internal/api/respond"
	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/media"
)

const maxJSONBody = 1 << 20

// decodeJSON reads a JSON request body into dest with a size cap.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return domain.Invalid("", "malformed JSON body")
	}
	return nil
}

// isMultipart reports whether the request carries a multipart form, the
// shape file uploads arrive in.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipart parses the form, bounding the body at the upload limit plus
// headroom for the text fields.
func parseMultipart(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadSize+maxJSONBody)
	if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
		return domain.Invalid("", "malformed multipart form")
	}
	return nil
}

// formUpload extracts the uploaded file from field. A missing file yields
// nil, letting callers decide whether the upload is required.
func formUpload(r *http.Request, field string) (*media.Upload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Invalid(field, "invalid file upload")
	}
	defer file.Close()

	if header.Size > media.MaxUploadSize {
		return nil, domain.Invalid(field, "file exceeds the 5MB upload limit")
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, domain.Invalid(field, "failed to read uploaded file")
	}
	return &media.Upload{Content: content, Filename: header.Filename}, nil
}

// hasFormValue reports whether the parsed form carries key, distinguishing
// an absent field from an empty one for partial updates.
func hasFormValue(r *http.Request, key string) bool {
	if r.MultipartForm == nil {
		return false
	}
	_, ok := r.MultipartForm.Value[key]
	return ok
}

func formStringPtr(r *http.Request, key string) *string {
	if !hasFormValue(r, key) {
		return nil
	}
	value := r.FormValue(key)
	return &value
}

func formInt(r *http.Request, key string) (int, error) {
	raw := r.FormValue(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Invalid(key, "must be an integer")
	}
	return value, nil
}

func formIntPtr(r *http.Request, key string) (*int, error) {
	if !hasFormValue(r, key) {
		return nil, nil
	}
	value, err := formInt(r, key)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func formFloat(r *http.Request, key string) (float64, error) {
	raw := r.FormValue(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.Invalid(key, "must be a number")
	}
	return value, nil
}

func formFloatPtr(r *http.Request, key string) (*float64, error) {
	if !hasFormValue(r, key) {
		return nil, nil
	}
	value, err := formFloat(r, key)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func formBoolPtr(r *http.Request, key string) (*bool, error) {
	if !hasFormValue(r, key) {
		return nil, nil
	}
	value, err := strconv.ParseBool(r.FormValue(key))
	if err != nil {
		return nil, domain.Invalid(key, "must be true or false")
	}
	return &value, nil
}

// boolQuery parses an optional true/false query parameter.
func boolQuery(r *http.Request, key string) *bool {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// listMeta builds the pagination block for a list response.
func listMeta(page domain.Page, total int64) respond.Pagination {
	return respond.Pagination{
		Total: total,
		Page:  page.Number,
		Pages: int(page.Pages(total)),
		Limit: page.Limit,
	}
}

// pageFrom parses pagination with the handler's default page size.
func pageFrom(r *http.Request, defaultLimit int) domain.Page {
	return pagination.Parse(r.URL.Query(), defaultLimit)
}
