package v1

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"
)

var allowedImageTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
	"image/gif":  {".gif"},
}

// ImageStore is the bucket product images are written to.
type ImageStore interface {
	UploadImage(ctx context.Context, body io.Reader, contentType, ext string) (string, error)
}

type UploadHandler struct {
	store         ImageStore
	maxUploadSize int64
}

// NewUploadHandler accepts a nil store; uploads then answer 503.
func NewUploadHandler(store ImageStore, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		store:         store,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		utils.WriteError(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}
	log := logger.WithContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		log.Warn().Err(err).Msg("Upload rejected: bad multipart form")
		utils.WriteError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		utils.WriteError(w, http.StatusBadRequest, "file too large")
		return
	}

	// trust the bytes, not the client's Content-Type
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		utils.WriteError(w, http.StatusBadRequest, "unreadable file")
		return
	}
	contentType := http.DetectContentType(head[:n])
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extensionAllowed(contentType, ext) {
		log.Warn().Str("content_type", contentType).Str("ext", ext).Msg("Upload rejected: not an allowed image")
		utils.WriteError(w, http.StatusBadRequest, "invalid file type, allowed: JPEG, PNG, WebP, GIF")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	url, err := h.store.UploadImage(r.Context(), file, contentType, ext)
	if err != nil {
		log.Error().Err(err).Msg("Image upload failed")
		utils.WriteError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	log.Info().Str("url", url).Int64("size", header.Size).Msg("Image uploaded")
	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}

func extensionAllowed(contentType, ext string) bool {
	for _, e := range allowedImageTypes[contentType] {
		if e == ext {
			return true
		}
	}
	return false
}
