package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"doodleparty/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingTokenStr         = "missing-token"
	ErrExpiredTokenStr         = "expired-token"
	ErrInvalidRequestFormatStr = "bad-request-format"
	ErrInvalidNameFormatStr    = "invalid-name-format"
	ErrUnknownStr              = "unknown-error"
)

const maxNameLength = 24

type sessionHandler struct {
	tokens       TokenManager
	cookieMaxAge time.Duration
	now          func() time.Time
}

func NewSessionHandler(tokens TokenManager, cookieMaxAge time.Duration) *sessionHandler {
	return &sessionHandler{tokens: tokens, cookieMaxAge: cookieMaxAge, now: time.Now}
}

// redact keeps enough of a token to correlate log lines without leaking it.
func redact(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return token
	}
	sig := []rune(parts[2])
	if len(sig) >= 10 {
		parts[2] = string(sig[:10]) + strings.Repeat("*", len(sig)-10)
	}
	return strings.Join(parts, ".")
}

func validName(name string) bool {
	n := utf8.RuneCountInString(name)
	if n == 0 || n > maxNameLength {
		return false
	}
	for _, r := range name {
		if r < ' ' || r == 0x7f {
			return false
		}
	}
	return true
}

// RequireSessionMiddleware puts the session's "id" and "name" on the context.
// Forged tokens are answered slowly.
func (sh *sessionHandler) RequireSessionMiddleware(trollTime time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie("token")
		if err != nil {
			ctx.String(http.StatusUnauthorized, ErrMissingTokenStr)
			ctx.Abort()
			return
		}

		session, err := sh.tokens.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidSigningAlg),
				errors.Is(err, domain.ErrInvalidTokenSignature),
				errors.Is(err, domain.ErrCorruptedToken):

				log.Warn().
					Err(err).
					Str("ip", ctx.ClientIP()).
					Str("user_agent", ctx.Request.UserAgent()).
					Str("token", redact(token)).
					Msg("RequireSessionMiddleware: suspicious token attempt")

				time.Sleep(trollTime)
				ctx.Status(http.StatusInternalServerError)
				ctx.Abort()

			case errors.Is(err, domain.ErrExpiredToken):
				log.Info().Str("ip", ctx.ClientIP()).Msg("RequireSessionMiddleware: token expired")
				ctx.String(http.StatusUnauthorized, ErrExpiredTokenStr)
				ctx.Abort()

			default:
				log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("RequireSessionMiddleware: internal auth error")
				ctx.String(http.StatusUnauthorized, ErrUnknownStr)
				ctx.Abort()
			}
			return
		}

		ctx.Set("id", session.Id)
		ctx.Set("name", session.Name)
		ctx.Next()
	}
}

// CreateSessionHandler starts a guest session under the chosen display name.
func (sh *sessionHandler) CreateSessionHandler(ctx *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.String(http.StatusBadRequest, ErrInvalidRequestFormatStr)
		ctx.Abort()
		return
	}

	name := strings.TrimSpace(body.Name)
	if !validName(name) {
		ctx.String(http.StatusBadRequest, ErrInvalidNameFormatStr)
		ctx.Abort()
		return
	}

	id := uuid.NewString()
	token, err := sh.tokens.Generate(id, name, sh.now())
	if err != nil {
		log.Error().Err(err).Str("ip", ctx.ClientIP()).Str("name", name).Msg("CreateSessionHandler: token generation error")
		ctx.String(http.StatusInternalServerError, ErrUnknownStr)
		ctx.Abort()
		return
	}

	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie("token", token, int(sh.cookieMaxAge.Seconds()), "/", "", true, true)
	ctx.JSON(http.StatusCreated, gin.H{"id": id, "name": name})
}

func (sh *sessionHandler) EndSessionHandler(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie("token", "", -1, "/", "", true, true)
	ctx.Status(http.StatusNoContent)
}
