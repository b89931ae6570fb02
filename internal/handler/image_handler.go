package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/codecraft/backend/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxImageBytes はアップロード画像の上限サイズ (2 MB)
const DefaultMaxImageBytes = 2 << 20

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageHandler はプロジェクト画像のアップロードを処理する
type ImageHandler struct {
	storage  storage.Storage
	maxBytes int64
	logger   *zap.Logger
}

// NewImageHandler は ImageHandler を生成する。maxBytes が 0 以下なら DefaultMaxImageBytes
func NewImageHandler(store storage.Storage, maxBytes int64, logger *zap.Logger) *ImageHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageHandler{storage: store, maxBytes: maxBytes, logger: logger}
}

// Upload は POST /api/admin/images を処理する。
// multipart の "image" フィールドを保存し、公開 URL を返す
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// multipart のヘッダ分の余裕を持たせる
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+64<<10)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file_too_large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image_required")
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form")
		return
	}
	if int64(len(data)) > h.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large")
		return
	}

	ct := header.Header.Get("Content-Type")
	if _, ok := allowedContentTypes[ct]; !ok {
		// ヘッダが無い・汎用型の場合は内容から判定
		ct = http.DetectContentType(data)
	}
	ext, ok := allowedContentTypes[ct]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_content_type")
		return
	}

	key := "project-images/" + uuid.NewString() + ext
	url, err := h.storage.Save(r.Context(), key, bytes.NewReader(data), ct)
	if err != nil {
		h.logger.Error("image upload failed", zap.String("key", key), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "upload_failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
