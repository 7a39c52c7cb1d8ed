package auth

import (
	"context"

	"github.com/pribylovaa/go-shorts-platform/internal/models"
)

type actorKey struct{}

// WithActor кладёт идентичность запроса в контекст.
func WithActor(ctx context.Context, a models.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom достаёт идентичность; без токена — анонимный Actor.
func ActorFrom(ctx context.Context) models.Actor {
	if ctx == nil {
		return models.Actor{}
	}

	a, _ := ctx.Value(actorKey{}).(models.Actor)

	return a
}
