// Package respond writes the API's JSON envelope: {"ok": bool, "error": string, ...}.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/vibecodes/vibecodes-api/internal/validation"
)

// Statuses maps a package's sentinel errors to HTTP status codes.
type Statuses map[error]int

// OK writes {"ok": true} merged with payload.
func OK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail writes a client error with a message shown to the user as is.
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"ok": false, "error": msg})
}

// Error maps err to a response. Validation errors become 400 with their
// message, known sentinels their mapped status, everything else a logged 500.
func Error(c *gin.Context, err error, statuses Statuses) {
	if ve, ok := validation.AsValidationError(err); ok {
		Fail(c, http.StatusBadRequest, ve.Message)
		return
	}

	for sentinel, status := range statuses {
		if errors.Is(err, sentinel) {
			Fail(c, status, sentinel.Error())
			return
		}
	}

	log.Ctx(c.Request.Context()).Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("request failed")
	Fail(c, http.StatusInternalServerError, "internal server error")
}
