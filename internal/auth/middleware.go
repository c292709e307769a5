package auth

import (
	"context"
	"net/http"

	"github.com/senyabanana/marketplace-service/internal/utils"

	"github.com/rs/zerolog"
)

type contextKey string

const emailKey contextKey = "authEmail"

// Middleware проверяет токен из cookie и кладёт email в контекст запроса.
type Middleware struct {
	Tokens *TokenManager
	Logger zerolog.Logger
}

// NewMiddleware создает новый экземпляр Middleware.
func NewMiddleware(tokens *TokenManager, logger zerolog.Logger) *Middleware {
	return &Middleware{Tokens: tokens, Logger: logger}
}

// RequireToken отклоняет запрос без валидного токена. Сравнение email из
// токена с параметром пути остаётся за обработчиком конкретного маршрута.
func (m *Middleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		email, err := m.Tokens.ParseToken(cookie.Value)
		if err != nil {
			m.Logger.Warn().Err(err).Msg("token verification failed")
			utils.SendErrorResponse(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		ctx := context.WithValue(r.Context(), emailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EmailFromContext возвращает email проверенной личности из контекста.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}
