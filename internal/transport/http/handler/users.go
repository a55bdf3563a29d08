package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-verification-nosql/internal/application/user"
	"github.com/go-verification-nosql/internal/domain"
	"github.com/go-verification-nosql/internal/pkg/validate"
)

// UserHandler handles the adapter's user endpoints.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if err := decode(r, &profile); err != nil {
		writeServiceError(w, err)
		return
	}
	u, err := h.svc.CreateUser(r.Context(), profile)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetUser(r.Context(), chi.URLParam(r, "id"))
	h.writeUser(w, u, err)
}

// GetByEmail serves GET /users?email=.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := validate.Email(email); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.GetUserByEmail(r.Context(), email)
	h.writeUser(w, u, err)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateUserRequest
	if err := decode(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	u, err := h.svc.UpdateUser(r.Context(), chi.URLParam(r, "id"), req)
	h.writeUser(w, u, err)
}

func (h *UserHandler) writeUser(w http.ResponseWriter, u *domain.User, err error) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
