package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/vaughan-dsouza/userapi/internal/store"
	"github.com/vaughan-dsouza/userapi/internal/utils"
)

type AuthHandler struct {
	Users  store.UserStore
	Secret string
	TTL    time.Duration
}

func NewAuthHandler(users store.UserStore, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{Users: users, Secret: secret, TTL: ttl}
}

type loginResp struct {
	Response string `json:"response"`
	Token    string `json:"token"`
	Email    string `json:"email"`
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req credentialsReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return nil
	}

	u, err := h.Users.FindByCredentials(r.Context(), req.Email, req.Password)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSON(w, http.StatusUnauthorized, map[string]string{"Error": "Wrong email or password"})
		return nil
	}
	if err != nil {
		return err
	}

	token, err := utils.GenerateToken(u.ID, h.Secret, h.TTL)
	if err != nil {
		return err
	}

	utils.JSON(w, http.StatusOK, loginResp{
		Response: "Successfully logged in",
		Token:    token,
		Email:    u.Email,
	})
	return nil
}

// -------------- PRIVATE (protected) ----------------

// Private returns the email of the token's subject. A token that outlives
// its user gets the generic 500, not a 404.
func (h *AuthHandler) Private(w http.ResponseWriter, r *http.Request) error {
	uid, ok := utils.UserIDFromContext(r.Context())
	if !ok {
		return utils.NewAPIError(http.StatusUnauthorized, "not authorized")
	}

	user, err := h.Users.Get(r.Context(), uid)
	if err != nil {
		return err
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"response": "User logged in:",
		"email":    user.Email,
	})
	return nil
}
