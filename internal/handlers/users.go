package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/userapi/internal/models"
	"github.com/vaughan-dsouza/userapi/internal/store"
	"github.com/vaughan-dsouza/userapi/internal/utils"
)

type UserHandler struct {
	Users store.UserStore
}

func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ---------------------- REGISTER ----------------------

// Register answers 300 when the email is already taken. The lookup and the
// insert share a transaction; concurrent registrations of one email can
// still both insert.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var body credentialsReq
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return nil
	}

	ctx := r.Context()
	exists := false

	err := h.Users.WithTx(ctx, func(tx store.UserStore) error {
		_, err := tx.FindByEmail(ctx, body.Email)
		if err == nil {
			exists = true
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return tx.Create(ctx, &models.User{Email: body.Email, Password: body.Password})
	})
	if err != nil {
		return err
	}

	if exists {
		utils.JSON(w, http.StatusMultipleChoices, map[string]string{"msg": "sorry  this user already exists!"})
		return nil
	}

	utils.JSON(w, http.StatusOK, map[string]string{"msg": "New user has been created"})
	return nil
}

// ---------------------- LIST ----------------------

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.Users.List(r.Context())
	if err != nil {
		return err
	}

	out := make([]models.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, u.Serialize())
	}

	utils.JSON(w, http.StatusOK, out)
	return nil
}

// ---------------------- DELETE ----------------------

// Delete reports a missing user with status 200 and an "Error" body.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	notFound := map[string]string{"Error": "user not found"}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.JSON(w, http.StatusOK, notFound)
		return nil
	}

	ctx := r.Context()
	found := true

	err = h.Users.WithTx(ctx, func(tx store.UserStore) error {
		user, err := tx.Get(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Delete(ctx, user)
	})
	if err != nil {
		return err
	}

	if !found {
		utils.JSON(w, http.StatusOK, notFound)
		return nil
	}

	utils.JSON(w, http.StatusOK, map[string]string{"msg": "user has been deleted"})
	return nil
}
