package auth

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service      *Service
	exposeErrors bool
}

func NewHandler(service *Service, exposeErrors bool) *Handler {
	return &Handler{
		service:      service,
		exposeErrors: exposeErrors,
	}
}

// SetupRequest represents the first super admin creation body
type SetupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	TurnstileToken string `json:"turnstileToken"`
}

// ForgotPasswordRequest represents the password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the password reset confirmation
type ResetPasswordRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

// SetupStatusResponse tells the frontend whether to show the bootstrap form
type SetupStatusResponse struct {
	SetupRequired bool `json:"setupRequired"`
}

// Setup handles first-time super admin creation
// @Summary      Create the first super admin
// @Description  Only allowed while no super admin exists
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SetupRequest true "Super admin details"
// @Success      201 {object} httputil.Envelope{data=Session}
// @Failure      400 {object} httputil.Envelope "Setup complete, missing fields or duplicate email"
// @Failure      500 {object} httputil.Envelope "Internal server error"
// @Router       /auth/setup [post]
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SetupRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid setup request body", "error", err.Error())
		respondError(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	session, err := h.service.Setup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrSetupComplete):
			logger.Warn("setup rejected: super admin exists")
			respondError(w, "Super admin already exists. Please login instead.", httputil.CodeSetupComplete, http.StatusBadRequest)
		case errors.Is(err, ErrSetupFieldsRequired):
			respondError(w, "Please provide name, email, and password.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, user.ErrDuplicateEmail):
			respondError(w, "Email already exists.", httputil.CodeEmailAlreadyExists, http.StatusBadRequest)
		default:
			logger.Error("setup failed: internal error", "error", err.Error())
			httputil.RespondInternalError(w, "Error creating super admin.", err, h.exposeErrors)
		}
		return
	}

	logger.Info("super admin created", "user_id", session.User.ID)
	httputil.RespondSuccess(w, "Super admin created successfully.", session, http.StatusCreated)
}

// SetupStatus reports whether bootstrap is still required
// @Summary      Setup status
// @Tags         auth
// @Produce      json
// @Success      200 {object} httputil.Envelope{data=SetupStatusResponse}
// @Router       /auth/setup-status [get]
func (h *Handler) SetupStatus(w http.ResponseWriter, r *http.Request) {
	required, err := h.service.SetupRequired(r.Context())
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("setup status failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error checking setup status.", err, h.exposeErrors)
		return
	}

	httputil.RespondSuccess(w, "", SetupStatusResponse{SetupRequired: required}, http.StatusOK)
}

// Login handles user login
// @Summary      User login
// @Description  Verify the bot check token and credentials and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} httputil.Envelope{data=Session}
// @Failure      400 {object} httputil.Envelope "Security check failed or missing fields"
// @Failure      401 {object} httputil.Envelope "Invalid credentials or inactive account"
// @Failure      429 {object} httputil.Envelope "Too many requests"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		respondError(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password, req.TurnstileToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrSecurityCheckFailed):
			logger.Warn("login failed: security check")
			respondError(w, "Security check failed. Please refresh and try again.", httputil.CodeSecurityCheck, http.StatusBadRequest)
		case errors.Is(err, ErrCredentialsRequired):
			respondError(w, "Please provide email and password.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCredentials):
			logger.Warn("login failed: invalid credentials")
			respondError(w, "Invalid credentials.", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
		case errors.Is(err, ErrAccountInactive):
			logger.Warn("login failed: account inactive")
			respondError(w, "Account is inactive. Please contact administrator.", httputil.CodeAccountInactive, http.StatusUnauthorized)
		default:
			logger.Error("login failed: internal error", "error", err.Error())
			httputil.RespondInternalError(w, "Error during login.", err, h.exposeErrors)
		}
		return
	}

	logger.Info("user logged in successfully", "user_id", session.User.ID)
	httputil.RespondSuccess(w, "Login successful.", session, http.StatusOK)
}

// Me returns the authenticated user
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.Envelope{data=user.User}
// @Failure      401 {object} httputil.Envelope
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := user.FromContext(r.Context())
	if !ok {
		respondError(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	httputil.RespondSuccess(w, "", u, http.StatusOK)
}

// ForgotPassword emails a one-time reset code
// @Summary      Request password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ForgotPasswordRequest true "Email address"
// @Success      200 {object} httputil.Envelope
// @Failure      400 {object} httputil.Envelope "Missing email"
// @Failure      404 {object} httputil.Envelope "Unknown email"
// @Failure      500 {object} httputil.Envelope "Email delivery failed"
// @Router       /auth/forgot-password [post]
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ForgotPasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid forgot password request body", "error", err.Error())
		respondError(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	err := h.service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailRequired):
			respondError(w, "Please provide email.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, ErrUserNotFound):
			respondError(w, "User with this email does not exist.", httputil.CodeUserNotFound, http.StatusNotFound)
		case errors.Is(err, ErrEmailDelivery):
			logger.Error("forgot password failed: email delivery", "error", err.Error())
			respondError(w, "Error sending email. Please try again.", httputil.CodeEmailDelivery, http.StatusInternalServerError)
		default:
			logger.Error("forgot password failed: internal error", "error", err.Error())
			httputil.RespondInternalError(w, "Error processing request.", err, h.exposeErrors)
		}
		return
	}

	httputil.RespondSuccess(w, "OTP sent to your email.", nil, http.StatusOK)
}

// ResetPassword consumes a reset code and sets a new password
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "Email, code and new password"
// @Success      200 {object} httputil.Envelope
// @Failure      400 {object} httputil.Envelope "Missing fields or invalid code"
// @Router       /auth/reset-password [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ResetPasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid reset password request body", "error", err.Error())
		respondError(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	err := h.service.ResetPassword(r.Context(), req.Email, req.OTP, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrResetFieldsRequired):
			respondError(w, "Please provide email, OTP, and new password.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidOTP):
			logger.Warn("password reset failed: invalid or expired otp")
			respondError(w, "Invalid or expired OTP.", httputil.CodeInvalidOTP, http.StatusBadRequest)
		default:
			logger.Error("password reset failed: internal error", "error", err.Error())
			httputil.RespondInternalError(w, "Error resetting password.", err, h.exposeErrors)
		}
		return
	}

	logger.Info("password reset successfully")
	httputil.RespondSuccess(w, "Password reset successfully. You can now login.", nil, http.StatusOK)
}

// respondError sends an error response with a machine-readable code
func respondError(w http.ResponseWriter, message string, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, message, code, statusCode)
}
