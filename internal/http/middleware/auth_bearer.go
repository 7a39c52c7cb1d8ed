package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/pribylovaa/go-shorts-platform/internal/auth"
	apierrors "github.com/pribylovaa/go-shorts-platform/internal/http/errors"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/pkg/log"
	"github.com/pribylovaa/go-shorts-platform/internal/pkg/redact"
	"github.com/pribylovaa/go-shorts-platform/internal/service"
)

// TokenVerifier проверяет access-токен.
type TokenVerifier interface {
	Verify(token string) (models.Actor, error)
}

// AuthBearer читает Authorization: Bearer <jwt>.
// Без заголовка запрос идёт дальше анонимным; обязательность решает сервис.
// Присланный, но невалидный токен — сразу 401.
func AuthBearer(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || v == nil {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			token := ""
			if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
				token = strings.TrimSpace(header[len(prefix):])
			}
			if token == "" {
				apierrors.WriteError(w, r, service.ErrUnauthenticated)
				return
			}

			actor, err := v.Verify(token)
			if err != nil {
				log.From(r.Context()).Warn("invalid_token",
					slog.String("token", redact.Token(token)),
					slog.String("err", err.Error()),
				)
				apierrors.WriteError(w, r, service.ErrUnauthenticated)
				return
			}

			ctx := auth.WithActor(r.Context(), actor)
			ctx = log.With(ctx, slog.String("user_id", actor.UserID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
