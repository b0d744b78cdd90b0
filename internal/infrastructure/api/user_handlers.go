package api

import (
	"encoding/json"
	"net/http"

	"glowcart-marketing-core/internal/application"
	"glowcart-marketing-core/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// UserHandlers exposes dashboard user registration, login and profile
// management.
type UserHandlers struct {
	service *application.UserService
	logger  zerolog.Logger
}

// NewUserHandlers creates the user handler set.
func NewUserHandlers(service *application.UserService, logger zerolog.Logger) *UserHandlers {
	return &UserHandlers{service: service, logger: logger}
}

// Register mounts the routes that only need a session.
func (h *UserHandlers) Register(r chi.Router) {
	r.Post("/api/users/register", h.register)
	r.Post("/api/users/login", h.login)
	r.Post("/api/users/logout", h.logout)
}

// RegisterProtected mounts the routes behind the user guard.
func (h *UserHandlers) RegisterProtected(r chi.Router) {
	r.Get("/api/users/me", h.me)
	r.Put("/api/users/me", h.update)
}

func (h *UserHandlers) register(w http.ResponseWriter, r *http.Request) {
	session := domain.SessionFromContext(r.Context())

	var input application.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	user, err := h.service.Register(r.Context(), session, input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, user.Profile())
}

func (h *UserHandlers) login(w http.ResponseWriter, r *http.Request) {
	session := domain.SessionFromContext(r.Context())

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	user, err := h.service.Login(r.Context(), session, input.Username, input.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Profile())
}

func (h *UserHandlers) logout(w http.ResponseWriter, r *http.Request) {
	session := domain.SessionFromContext(r.Context())

	if err := h.service.Logout(r.Context(), session); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *UserHandlers) me(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user.Profile())
}

func (h *UserHandlers) update(w http.ResponseWriter, r *http.Request) {
	user := domain.UserFromContext(r.Context())

	var input struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, domain.NewValidation("invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), user, input.Email, input.FullName)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, updated.Profile())
}
