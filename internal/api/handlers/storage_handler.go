package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lifetrack/lifetrack-be/internal/auth"
	"github.com/lifetrack/lifetrack-be/internal/services"
	"github.com/lifetrack/lifetrack-be/internal/storage"
)

const signedURLExpiry = 15 * time.Minute

// StorageHandler proxies file operations to the external object store. Every
// route carries a user_id path segment that must match the bearer token's
// subject; the handler never touches a bucket for anyone else.
type StorageHandler struct {
	store    *storage.Client
	eventSvc services.EventServiceProvider
}

// NewStorageHandler creates a new StorageHandler.
func NewStorageHandler(store *storage.Client, eventSvc services.EventServiceProvider) *StorageHandler {
	return &StorageHandler{store: store, eventSvc: eventSvc}
}

// ownerFromPath checks the user_id path segment against the authenticated
// account. The second return value is false when the response has already
// been written.
func ownerFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, _ := auth.UserID(r.Context())
	pathID, err := idParam(r, "userId")
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return 0, false
	}
	if pathID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return 0, false
	}
	return userID, true
}

// GetBucket ensures the account's bucket exists and reports its name.
func (h *StorageHandler) GetBucket(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromPath(w, r)
	if !ok {
		return
	}

	bucket, err := h.store.EnsureBucket(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to ensure bucket")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"bucket": bucket})
}

// UploadFile accepts a multipart upload and forwards it to the store.
func (h *StorageHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromPath(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "A multipart 'file' field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := h.store.Upload(r.Context(), userID, header.Filename, file, header.Size, contentType); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("filename", header.Filename).Msg("Failed to upload file")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.eventSvc.CreateEvent("storage.upload", "info", "Uploaded file "+header.Filename, &userID)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "File uploaded successfully",
		"filename": header.Filename,
		"size":     header.Size,
	})
}

// GetFiles lists the objects in the account's bucket.
func (h *StorageHandler) GetFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromPath(w, r)
	if !ok {
		return
	}

	files, err := h.store.List(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list files")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"files": files})
}

// DeleteFile removes one object from the account's bucket.
func (h *StorageHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromPath(w, r)
	if !ok {
		return
	}
	filename := chi.URLParam(r, "filename")

	if err := h.store.Delete(r.Context(), userID, filename); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int64("user_id", userID).Str("filename", filename).Msg("Failed to delete file")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.eventSvc.CreateEvent("storage.delete", "info", "Deleted file "+filename, &userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}

// DownloadFile streams one object back to the caller.
func (h *StorageHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromPath(w, r)
	if !ok {
		return
	}
	filename := chi.URLParam(r, "filename")

	obj, info, err := h.store.Download(r.Context(), userID, filename)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int64("user_id", userID).Str("filename", filename).Msg("Failed to download file")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer obj.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\""+info.Name+"\"")
	if _, err := io.Copy(w, obj); err != nil {
		// Headers are gone; all we can do is log.
		log.Warn().Err(err).Int64("user_id", userID).Str("filename", filename).Msg("File stream interrupted")
	}
}

// SignedURL returns a short-lived presigned GET URL for one object.
func (h *StorageHandler) SignedURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := ownerFromPath(w, r)
	if !ok {
		return
	}
	filename := chi.URLParam(r, "filename")

	url, err := h.store.SignedURL(r.Context(), userID, filename, signedURLExpiry)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("filename", filename).Msg("Failed to create signed URL")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":        url,
		"expires_in": int(signedURLExpiry.Seconds()),
	})
}
