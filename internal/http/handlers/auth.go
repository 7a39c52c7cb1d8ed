package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-shorts-platform/internal/auth"
	apierrors "github.com/pribylovaa/go-shorts-platform/internal/http/errors"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
)

// Register — POST /auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authFromModel(res))
}

// Login — POST /auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := h.decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authFromModel(res))
}

// Me — GET /me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context(), auth.ActorFrom(r.Context()))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(u))
}
