package utils

import (
	"context"

	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

// ActorFromCtx extracts the authenticated actor placed into the request
// context by the auth middleware.
func ActorFromCtx(ctx context.Context) (types.Actor, error) {
	actor, ok := ctx.Value(contextkeys.ActorKey).(types.Actor)
	if !ok || actor.ID == 0 {
		return types.Actor{}, apperrors.ErrActorNotFoundInContext
	}
	return actor, nil
}

// WithActor returns a context carrying the actor identity.
func WithActor(ctx context.Context, actor types.Actor) context.Context {
	ctx = context.WithValue(ctx, contextkeys.ActorKey, actor)
	return context.WithValue(ctx, contextkeys.UserIDKey, actor.ID)
}
