package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/senyabanana/marketplace-service/internal/auth"
	"github.com/senyabanana/marketplace-service/internal/utils"

	"github.com/rs/zerolog"
)

// AuthHandler - структура для выдачи и сброса auth-cookie.
type AuthHandler struct {
	Tokens     *auth.TokenManager
	Logger     zerolog.Logger
	Production bool
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(tokens *auth.TokenManager, logger zerolog.Logger, production bool) *AuthHandler {
	return &AuthHandler{
		Tokens:     tokens,
		Logger:     logger,
		Production: production,
	}
}

// IssueToken обрабатывает POST /jwt: выпускает токен для {email} и кладёт его
// в сессионную HTTP-only cookie (срок жизни ограничен exp внутри токена).
// В production cookie получает Secure и SameSite=None.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	token, err := h.Tokens.CreateToken(body.Email)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to sign token")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Production,
		SameSite: h.sameSite(),
	})

	if err = utils.SendJSON(w, http.StatusOK, map[string]bool{"success": true}); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// Logout обрабатывает GET /logoutWithCookies: сбрасывает auth-cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Production,
		SameSite: h.sameSite(),
	})

	if err := utils.SendJSON(w, http.StatusOK, map[string]bool{"success": true}); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *AuthHandler) sameSite() http.SameSite {
	if h.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}
