package handlers

import (
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/userapi/internal/config"
	"github.com/vaughan-dsouza/userapi/internal/db"
	"github.com/vaughan-dsouza/userapi/internal/store"
	"github.com/vaughan-dsouza/userapi/internal/utils"
)

type Handler struct {
	DB     *sqlx.DB
	Users  *UserHandler
	Auth   *AuthHandler
	Static *StaticHandler
}

func NewHandler(conn *sqlx.DB, users store.UserStore, cfg *config.Config) *Handler {
	return &Handler{
		DB:     conn,
		Users:  NewUserHandler(users),
		Auth:   NewAuthHandler(users, cfg.JWTSecret, cfg.AccessTTL),
		Static: NewStaticHandler(os.DirFS(cfg.StaticDir), cfg.Development()),
	}
}

func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("hello from the api!"))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := db.HealthCheck(r.Context(), h.DB); err != nil {
		utils.JSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"ok": true})
}
