package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-shorts-platform/internal/auth"
	apierrors "github.com/pribylovaa/go-shorts-platform/internal/http/errors"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
)

// RequestUploadURL — POST /videos/upload-url: presigned PUT для файла видео.
func (h *Handlers) RequestUploadURL(w http.ResponseWriter, r *http.Request) {
	var in models.UploadRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	info, err := h.svc.RequestUploadURL(r.Context(), auth.ActorFrom(r.Context()), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadFromModel(info))
}

// CreateVideo — POST /videos: подтверждение загрузки.
func (h *Handlers) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var in models.CreateVideoInput
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	actor := auth.ActorFrom(r.Context())
	v, err := h.svc.CreateVideo(r.Context(), actor, in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, videoFromModel(v, actor.UserID))
}

// GetVideo — GET /videos/{id}.
func (h *Handlers) GetVideo(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.VideoByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videoFromModel(v, auth.ActorFrom(r.Context()).UserID))
}

// RecordView — POST /videos/{id}/view.
func (h *Handlers) RecordView(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RecordView(r.Context(), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleVideoLike — POST /videos/{id}/like.
func (h *Handlers) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	liked, count, err := h.svc.ToggleVideoLike(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleLikeResponse{Liked: liked, LikesCount: count})
}

// UploadThumbnail — PUT /videos/{id}/thumbnail; тело — само изображение.
func (h *Handlers) UploadThumbnail(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength <= 0 {
		apierrors.WriteError(w, r, apierrors.BadRequest("body", "required", "Content-Length is required"))
		return
	}
	if r.ContentLength > h.opts.MaxThumbnailBytes {
		apierrors.WriteError(w, r, apierrors.BadRequest("body", "max", "thumbnail too large"))
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.opts.MaxThumbnailBytes)
	defer body.Close()

	actor := auth.ActorFrom(r.Context())
	v, err := h.svc.UploadThumbnail(r.Context(), actor, chi.URLParam(r, "id"), body, r.ContentLength, r.Header.Get("Content-Type"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, videoFromModel(v, actor.UserID))
}

// DeleteVideo — DELETE /videos/{id}.
func (h *Handlers) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteVideo(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
