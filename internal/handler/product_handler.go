package handler

import (
	"errors"
	"mime"
	"net/http"

	"gellies-store/internal/model"
	"gellies-store/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// photoField is the multipart field carrying the product image.
const photoField = "photo"

// ErrUploadTooLarge is returned when a request body exceeds the upload limit.
var ErrUploadTooLarge = model.NewDomainError(model.ErrCodeValidation, "Upload too large")

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service  service.ProductService
	maxBytes int64
	opts     Options
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler. maxBytes caps the size of
// a create or update request body.
func NewProductHandler(service service.ProductService, maxBytes int64, opts Options, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		maxBytes: maxBytes,
		opts:     opts,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		failure(w, r, err, "Failed to fetch products", h.opts, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, photo, cleanup, err := h.parseForm(w, r)
	if err != nil {
		failure(w, r, err, "Failed to add product", h.opts, h.logger)
		return
	}
	defer cleanup()

	if err := h.service.Create(r.Context(), fields, photo); err != nil {
		failure(w, r, err, "Failed to add product", h.opts, h.logger)
		return
	}

	writeMessage(w, "Product added!")
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	fields, photo, cleanup, err := h.parseForm(w, r)
	if err != nil {
		failure(w, r, err, "Failed to update product", h.opts, h.logger)
		return
	}
	defer cleanup()

	if err := h.service.Update(r.Context(), id, fields, photo); err != nil {
		failure(w, r, err, "Failed to update product", h.opts, h.logger)
		return
	}

	writeMessage(w, "Product updated")
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		failure(w, r, err, "Failed to delete product", h.opts, h.logger)
		return
	}

	writeMessage(w, "Product deleted")
}

// parseForm reads the product fields and the optional photo from a multipart,
// url-encoded or JSON body. A field is present only if the client sent it.
// JSON bodies carry no photo.
func (h *ProductHandler) parseForm(w http.ResponseWriter, r *http.Request) (model.ProductFields, *service.Photo, func(), error) {
	var fields model.ProductFields
	cleanup := func() {}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "application/json" {
		if err := decodeJSON(r, &fields); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return model.ProductFields{}, nil, cleanup, ErrUploadTooLarge
			}
			return model.ProductFields{}, nil, cleanup, err
		}
		return fields, nil, cleanup, nil
	}

	if err := r.ParseMultipartForm(h.maxBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fields, nil, cleanup, ErrUploadTooLarge
		}
		return fields, nil, cleanup, model.WrapDomainError(model.ErrCodeValidation, "Invalid form data", err)
	}

	if form := r.MultipartForm; form != nil {
		cleanup = func() {
			if err := form.RemoveAll(); err != nil {
				h.logger.Warn().Err(err).Msg("failed to remove multipart temp files")
			}
		}
	}

	field := func(key string) *string {
		values, ok := r.PostForm[key]
		if !ok || len(values) == 0 {
			return nil
		}
		v := values[0]
		return &v
	}

	fields = model.ProductFields{
		Name:     field("name"),
		Category: field("category"),
		Size:     field("size"),
		Barcode:  field("barcode"),
		Price:    field("price"),
	}

	if r.MultipartForm == nil {
		return fields, nil, cleanup, nil
	}

	file, header, err := r.FormFile(photoField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return fields, nil, cleanup, nil
		}
		cleanup()
		return fields, nil, func() {}, model.WrapDomainError(model.ErrCodeValidation, "Invalid photo upload", err)
	}

	release := cleanup
	cleanup = func() {
		_ = file.Close()
		release()
	}

	return fields, &service.Photo{Filename: header.Filename, Content: file}, cleanup, nil
}
