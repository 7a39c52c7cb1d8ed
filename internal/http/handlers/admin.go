package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-shorts-platform/internal/auth"
	apierrors "github.com/pribylovaa/go-shorts-platform/internal/http/errors"
)

// ReconcileVideo — POST /admin/videos/{id}/reconcile: пересчёт счётчиков видео.
func (h *Handlers) ReconcileVideo(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ReconcileVideo(r.Context(), auth.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reconcileFromResult(res))
}
