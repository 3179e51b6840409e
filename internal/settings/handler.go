package settings

import (
	"net/http"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

type Handler struct {
	service      *Service
	exposeErrors bool
}

func NewHandler(service *Service, exposeErrors bool) *Handler {
	return &Handler{service: service, exposeErrors: exposeErrors}
}

// Get returns the site settings
// @Summary      Get settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} httputil.Envelope{data=Settings}
// @Router       /settings [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.Get(r.Context())
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("get settings failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error fetching settings.", err, h.exposeErrors)
		return
	}

	httputil.RespondSuccess(w, "", s, http.StatusOK)
}

// Update changes site settings. socialLinks are merged key by key.
// @Summary      Update settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body Input true "Fields to change"
// @Success      200 {object} httputil.Envelope{data=Settings}
// @Router       /settings [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var in Input
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	s, err := h.service.Update(r.Context(), in, actor.ID)
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("update settings failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error updating settings.", err, h.exposeErrors)
		return
	}

	httputil.RespondSuccess(w, "Settings updated successfully.", s, http.StatusOK)
}
