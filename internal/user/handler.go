package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
)

// Handler serves admin account management endpoints
type Handler struct {
	service      *Service
	exposeErrors bool
}

func NewHandler(service *Service, exposeErrors bool) *Handler {
	return &Handler{service: service, exposeErrors: exposeErrors}
}

// CreateUserRequest represents the account creation body
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest represents a partial account update
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive *bool  `json:"isActive"`
	Role     string `json:"role"`
}

// List returns all accounts, newest first
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.ListEnvelope{data=[]User}
// @Router       /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("list users failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error fetching users.", err, h.exposeErrors)
		return
	}

	httputil.RespondList(w, users, len(users))
}

// Create adds an active account
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateUserRequest true "Account"
// @Success      201 {object} httputil.Envelope{data=User}
// @Failure      400 {object} httputil.Envelope "Missing fields or duplicate email"
// @Failure      403 {object} httputil.Envelope "Role elevation refused"
// @Router       /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	actor, ok := FromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req CreateUserRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), actor, CreateInput(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrFieldsRequired):
			httputil.RespondErrorWithCode(w, "Please provide name, email, and password.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidRole):
			httputil.RespondErrorWithCode(w, "Invalid role.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, ErrSuperAdminCreateDenied):
			httputil.RespondErrorWithCode(w, "Only super admin can create other super admins.", httputil.CodeForbidden, http.StatusForbidden)
		case errors.Is(err, ErrDuplicateEmail):
			httputil.RespondErrorWithCode(w, "Email already exists.", httputil.CodeEmailAlreadyExists, http.StatusBadRequest)
		default:
			logger.Error("create user failed", "error", err.Error())
			httputil.RespondInternalError(w, "Error creating user.", err, h.exposeErrors)
		}
		return
	}

	logger.Info("user created", "user_id", created.ID, "actor_id", actor.ID)
	httputil.RespondSuccess(w, "User created successfully.", created, http.StatusCreated)
}

// Update patches an account
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body UpdateUserRequest true "Fields to change"
// @Success      200 {object} httputil.Envelope{data=User}
// @Failure      403 {object} httputil.Envelope
// @Failure      404 {object} httputil.Envelope
// @Router       /users/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	actor, ok := FromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "User not found.", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	var req UpdateUserRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), actor, id, UpdateInput(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "User not found.", httputil.CodeNotFound, http.StatusNotFound)
		case errors.Is(err, ErrSuperAdminUpdateDenied):
			httputil.RespondErrorWithCode(w, "Only super admin can update other super admins.", httputil.CodeForbidden, http.StatusForbidden)
		case errors.Is(err, ErrInvalidRole):
			httputil.RespondErrorWithCode(w, "Invalid role.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, ErrDuplicateEmail):
			httputil.RespondErrorWithCode(w, "Email already exists.", httputil.CodeEmailAlreadyExists, http.StatusBadRequest)
		default:
			logger.Error("update user failed", "error", err.Error())
			httputil.RespondInternalError(w, "Error updating user.", err, h.exposeErrors)
		}
		return
	}

	httputil.RespondSuccess(w, "User updated successfully.", updated, http.StatusOK)
}

// Delete removes an account
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200 {object} httputil.Envelope
// @Failure      400 {object} httputil.Envelope "Self deletion"
// @Failure      403 {object} httputil.Envelope
// @Failure      404 {object} httputil.Envelope
// @Router       /users/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	actor, ok := FromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "User not found.", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "User not found.", httputil.CodeNotFound, http.StatusNotFound)
		case errors.Is(err, ErrSelfDeletion):
			httputil.RespondErrorWithCode(w, "You cannot delete your own account.", httputil.CodeSelfDeletion, http.StatusBadRequest)
		case errors.Is(err, ErrSuperAdminDeleteDenied):
			httputil.RespondErrorWithCode(w, "Only super admin can delete other super admins.", httputil.CodeForbidden, http.StatusForbidden)
		default:
			logger.Error("delete user failed", "error", err.Error())
			httputil.RespondInternalError(w, "Error deleting user.", err, h.exposeErrors)
		}
		return
	}

	logger.Info("user deleted", "user_id", id, "actor_id", actor.ID)
	httputil.RespondSuccess(w, "User deleted successfully.", nil, http.StatusOK)
}
