package middleware

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

// Handler handles one interaction. The context carries the request id and a
// logger scoped to it.
type Handler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate)

// Interaction tags every interaction with a request id and logs its start and
// completion. Panics in next are logged and swallowed so one bad interaction
// cannot take the gateway down.
func Interaction(logger zerolog.Logger) func(Handler) Handler {
	return func(next Handler) Handler {
		return func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
			start := time.Now()
			requestID := uuid.New().String()

			ctx = context.WithValue(ctx, RequestIDKey, requestID)

			l := logger.With().
				Str("request_id", requestID).
				Str("interaction_id", i.ID).
				Str("owner_id", OwnerID(i)).
				Str("kind", i.Type.String()).
				Logger()
			ctx = l.WithContext(ctx)

			l.Debug().Msg("interaction started")

			defer func() {
				if r := recover(); r != nil {
					l.Error().Interface("panic", r).Msg("interaction handler panicked")
				}
				duration := time.Since(start)
				l.Info().
					Int64("duration_ms", duration.Milliseconds()).
					Dur("duration", duration).
					Msg("interaction completed")
			}()

			next(ctx, s, i)
		}
	}
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// OwnerID is the id of the user who triggered i, in a guild or a DM.
func OwnerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
