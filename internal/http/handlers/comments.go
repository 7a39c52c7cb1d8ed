package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-shorts-platform/internal/auth"
	apierrors "github.com/pribylovaa/go-shorts-platform/internal/http/errors"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
)

// ListVideoComments — GET /videos/{id}/comments?page&limit&sort_by&sort_order.
func (h *Handlers) ListVideoComments(w http.ResponseWriter, r *http.Request) {
	p := models.ListCommentsParams{
		VideoID:   chi.URLParam(r, "id"),
		SortBy:    models.SortField(r.URL.Query().Get("sort_by")),
		SortOrder: models.SortOrder(r.URL.Query().Get("sort_order")),
	}

	var err error
	if p.Page, err = queryInt32(r, "page"); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	if p.Limit, err = queryInt32(r, "limit"); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.ListVideoComments(r.Context(), p)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pageFromModel(page, auth.ActorFrom(r.Context()).UserID))
}

// GetThread — GET /comments/{id}/thread?limit.
func (h *Handlers) GetThread(w http.ResponseWriter, r *http.Request) {
	p := models.ThreadParams{RootID: chi.URLParam(r, "id")}

	var err error
	if p.Limit, err = queryInt32(r, "limit"); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.svc.GetThread(r.Context(), p)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"comments": commentsFromModels(items, auth.ActorFrom(r.Context()).UserID),
	})
}

// CreateComment — POST /videos/{id}/comments.
func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var in createCommentRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	actor := auth.ActorFrom(r.Context())
	c, err := h.svc.CreateComment(r.Context(), actor, models.CreateCommentInput{
		VideoID:  chi.URLParam(r, "id"),
		ParentID: in.ParentID,
		Content:  in.Content,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentFromModel(c, actor.UserID))
}

// GetComment — GET /comments/{id}.
func (h *Handlers) GetComment(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFrom(r.Context())

	c, err := h.svc.CommentByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentFromModel(c, actor.UserID))
}

// EditComment — PATCH /comments/{id}.
func (h *Handlers) EditComment(w http.ResponseWriter, r *http.Request) {
	var in editCommentRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	actor := auth.ActorFrom(r.Context())
	c, err := h.svc.EditComment(r.Context(), actor, chi.URLParam(r, "id"), in.Content)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, commentFromModel(c, actor.UserID))
}

// DeleteComment — DELETE /comments/{id}; удаляет ветку целиком.
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.DeleteComment(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteCommentResponse{Deleted: n})
}

// ToggleCommentLike — POST /comments/{id}/like.
func (h *Handlers) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	liked, count, err := h.svc.ToggleCommentLike(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleLikeResponse{Liked: liked, LikesCount: int64(count)})
}

// ReportComment — POST /comments/{id}/report.
func (h *Handlers) ReportComment(w http.ResponseWriter, r *http.Request) {
	var in reportCommentRequest
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.svc.ReportComment(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"), in.Reason); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
