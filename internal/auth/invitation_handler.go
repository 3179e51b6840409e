package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

// InviteRequest represents the invitation body
type InviteRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SetupPasswordRequest carries the password chosen by an invited user
type SetupPasswordRequest struct {
	Password string `json:"password"`
}

// InvitedUserResponse is the public view of an invited account
type InvitedUserResponse struct {
	ID    uuid.UUID `json:"id,omitempty"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

// Invite creates an inactive admin and emails the setup link
// @Summary      Invite an admin
// @Tags         invitation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body InviteRequest true "Invitee"
// @Success      201 {object} httputil.Envelope{data=InvitedUserResponse}
// @Failure      400 {object} httputil.Envelope "Existing email or invalid role"
// @Failure      403 {object} httputil.Envelope "Not a super admin"
// @Failure      500 {object} httputil.Envelope "Email delivery failed"
// @Router       /invitation/invite [post]
func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req InviteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid invite request body", "error", err.Error())
		respondError(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	invited, err := h.service.Invite(r.Context(), req.Name, req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrInviteFieldsRequired):
			respondError(w, "Please provide name and email.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, user.ErrInvalidRole):
			respondError(w, "Invalid role.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, ErrUserExists):
			logger.Warn("invite rejected: email already registered")
			respondError(w, "User with this email already exists", httputil.CodeEmailAlreadyExists, http.StatusBadRequest)
		case errors.Is(err, ErrEmailDelivery):
			logger.Error("invite email failed, invited user kept", "error", err.Error())
			respondError(w, "Failed to send invitation email", httputil.CodeEmailDelivery, http.StatusInternalServerError)
		default:
			logger.Error("invite failed: internal error", "error", err.Error())
			httputil.RespondInternalError(w, "Failed to invite user", err, h.exposeErrors)
		}
		return
	}

	logger.Info("user invited", "user_id", invited.ID)
	httputil.RespondSuccess(w, "Invitation sent successfully", InvitedUserResponse{
		ID:    invited.ID,
		Name:  invited.Name,
		Email: invited.Email,
		Role:  invited.Role,
	}, http.StatusCreated)
}

// VerifyInvitation validates a setup link without consuming it
// @Summary      Verify invitation token
// @Tags         invitation
// @Produce      json
// @Param        token path string true "Invitation token"
// @Success      200 {object} httputil.Envelope{data=InvitedUserResponse}
// @Failure      400 {object} httputil.Envelope "Invalid or expired token"
// @Router       /invitation/verify/{token} [get]
func (h *Handler) VerifyInvitation(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	invited, err := h.service.VerifyInvitation(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		if errors.Is(err, ErrInvalidInvitation) {
			respondError(w, "Invalid or expired invitation token", httputil.CodeInvalidInvitation, http.StatusBadRequest)
			return
		}
		logger.Error("verify invitation failed: internal error", "error", err.Error())
		httputil.RespondInternalError(w, "Failed to verify invitation", err, h.exposeErrors)
		return
	}

	httputil.RespondSuccess(w, "", InvitedUserResponse{
		Name:  invited.Name,
		Email: invited.Email,
		Role:  invited.Role,
	}, http.StatusOK)
}

// SetupPassword consumes an invitation and activates the account
// @Summary      Set password from invitation
// @Tags         invitation
// @Accept       json
// @Produce      json
// @Param        token path string true "Invitation token"
// @Param        request body SetupPasswordRequest true "New password"
// @Success      200 {object} httputil.Envelope
// @Failure      400 {object} httputil.Envelope "Short password or invalid token"
// @Router       /invitation/setup/{token} [post]
func (h *Handler) SetupPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SetupPasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid setup password request body", "error", err.Error())
		respondError(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	err := h.service.SetupPassword(r.Context(), chi.URLParam(r, "token"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordTooShort):
			respondError(w, "Password must be at least 6 characters", httputil.CodePasswordTooShort, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidInvitation):
			logger.Warn("setup password failed: invalid or expired token")
			respondError(w, "Invalid or expired invitation token", httputil.CodeInvalidInvitation, http.StatusBadRequest)
		default:
			logger.Error("setup password failed: internal error", "error", err.Error())
			httputil.RespondInternalError(w, "Failed to setup password", err, h.exposeErrors)
		}
		return
	}

	logger.Info("invitation accepted")
	httputil.RespondSuccess(w, "Password set successfully. You can now login.", nil, http.StatusOK)
}
