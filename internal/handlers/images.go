package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/interviewqa/apiserver/internal/services"
)

const (
	formFieldImage     = "image"
	maxMultipartMemory = 16 << 20
	// multipartOverhead covers boundaries and part headers around the file.
	multipartOverhead = 1 << 20
)

var errUploadTooLarge = errors.New("uploaded file too large")

// ImageHandler accepts category image uploads.
type ImageHandler struct {
	imageService *services.ImageService
}

func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// ImageRouter registers image routes on the given router.
func ImageRouter(r chi.Router, imageService *services.ImageService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewImageHandler(imageService)
	r.With(authMiddleware).Post("/", handler.Upload)
}

// Upload stores the multipart "image" field and returns its public URL.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxImageBytes+multipartOverhead)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, errUploadTooLarge.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile(formFieldImage)
	if err != nil {
		writeError(w, http.StatusBadRequest, `"image" is required`)
		return
	}
	data, err := readFileLimited(file, services.MaxImageBytes)
	_ = file.Close()
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.imageService.Upload(r.Context(), header.Filename, data)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"imageUrl": url})
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errUploadTooLarge
	}
	return data, nil
}
