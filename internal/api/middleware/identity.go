package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/mcoot/hangbot/internal/api/apierr"
	"github.com/mcoot/hangbot/internal/model"
)

// PlayerHeader carries the player id supplied by the chat platform
const PlayerHeader = "X-Player-ID"

type contextKey string

const playerContextKey contextKey = "player"

var playerIDPattern = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,64}$`)

// Identity requires a player id header and stores it in the request context
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := extractPlayerID(r)
			if id == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			ctx := context.WithValue(r.Context(), playerContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalIdentity stores the player id if present but doesn't require it
func OptionalIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := extractPlayerID(r); id != "" {
				r = r.WithContext(context.WithValue(r.Context(), playerContextKey, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractPlayerID reads and validates the player header
func extractPlayerID(r *http.Request) model.PlayerID {
	id := strings.TrimSpace(r.Header.Get(PlayerHeader))
	if !playerIDPattern.MatchString(id) {
		return ""
	}
	return model.PlayerID(id)
}

// GetPlayerID returns the player id from the request context, or empty
func GetPlayerID(ctx context.Context) model.PlayerID {
	id, _ := ctx.Value(playerContextKey).(model.PlayerID)
	return id
}

// MustGetPlayerID returns the player id or panics
func MustGetPlayerID(ctx context.Context) model.PlayerID {
	id := GetPlayerID(ctx)
	if id == "" {
		panic("no player in context - identity middleware not applied?")
	}
	return id
}
