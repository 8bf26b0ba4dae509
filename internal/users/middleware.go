package users

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/vibecodes/vibecodes-api/internal/auth"
)

type Ensurer interface {
	EnsureUser(ctx context.Context, u UpsertUser) (string, error)
}

// WithUser runs after the auth middleware: it upserts the caller's profile and
// stores the internal user id under auth.CtxUserID.
func WithUser(users Ensurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := auth.FirebaseUID(c)
		if fuid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthenticated"})
			return
		}

		uid, err := users.EnsureUser(c.Request.Context(), UpsertUser{
			FirebaseUID: fuid,
			Email:       c.GetString(auth.CtxEmail),
			DisplayName: c.GetHeader("X-User-Name"),
			AvatarURL:   c.GetHeader("X-User-Photo"),
		})
		if err != nil {
			log.Ctx(c.Request.Context()).Error().Err(err).Str("firebase_uid", fuid).Msg("ensure user failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
			return
		}

		c.Set(auth.CtxUserID, uid)
		c.Request = c.Request.WithContext(
			log.Ctx(c.Request.Context()).With().Str("user_id", uid).Logger().WithContext(c.Request.Context()),
		)
		c.Next()
	}
}
