// Package uploads accepts admin image uploads and stores them through the
// configured file storage (local directory or S3).
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/system/auth"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxBytes is the upload cap when none is configured.
const DefaultMaxBytes = 10 << 20

// formOverhead is the room left for multipart headers and boundaries on top
// of the file itself.
const formOverhead = 64 << 10

// allowedTypes maps each accepted sniffed type to the extension it is stored with.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/avif": ".avif",
}

// Storer is the part of storage.Store uploads need.
type Storer interface {
	Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error
	URL(path string) string
}

// Handler serves POST /api/admin/upload.
type Handler struct {
	store    Storer
	maxBytes int64
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler creates an upload Handler. maxBytes <= 0 means DefaultMaxBytes.
func NewHandler(store Storer, maxBytes int64, logger *zap.Logger) *Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Handler{
		store:    store,
		maxBytes: maxBytes,
		logger:   logger,
		now:      time.Now,
	}
}

// Routes returns a chi.Router with POST / mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.upload)
	return r
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+formOverhead)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		if tooLarge(err) {
			h.rejectTooLarge(w)
			return
		}
		jsonutil.BadRequest(w, "Expected a multipart form with a file field")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.BadRequest(w, "File is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		h.rejectTooLarge(w)
		return
	}
	if header.Size == 0 {
		jsonutil.BadRequest(w, "File is empty")
		return
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		jsonutil.BadRequest(w, "Could not read file")
		return
	}
	ext, ok := allowedTypes[mtype.String()]
	if !ok {
		jsonutil.BadRequest(w, "Only JPEG, PNG, WebP, GIF or AVIF images are allowed")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.logger.Error("rewind upload", zap.Error(err))
		jsonutil.InternalError(w, "Internal server error")
		return
	}

	now := h.now().UTC()
	path := fmt.Sprintf("uploads/%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.NewString(), ext)
	if err := h.store.Put(r.Context(), path, file, &storage.PutOptions{ContentType: mtype.String()}); err != nil {
		h.logger.Error("upload failed", zap.String("path", path), zap.Error(err))
		jsonutil.InternalError(w, "Failed to store file")
		return
	}

	fields := []zap.Field{
		zap.String("path", path),
		zap.String("content_type", mtype.String()),
		zap.Int64("size", header.Size),
	}
	if a, ok := auth.CurrentAdmin(r); ok {
		fields = append(fields, zap.String("admin_email", a.Email))
	}
	h.logger.Info("image uploaded", fields...)

	jsonutil.Created(w, map[string]string{"url": h.store.URL(path)})
}

func (h *Handler) rejectTooLarge(w http.ResponseWriter) {
	jsonutil.PayloadTooLarge(w, fmt.Sprintf("File exceeds the %d MB upload limit", max(h.maxBytes>>20, 1)))
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
