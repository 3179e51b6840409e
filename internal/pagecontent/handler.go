package pagecontent

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

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

// ReplaceRequest is the body of a full page update
type ReplaceRequest struct {
	Sections []SectionInput `json:"sections"`
}

// Get returns the sections of a page
// @Summary      Get page content
// @Tags         content
// @Produce      json
// @Param        page path string true "home, about, services, blog or contact"
// @Success      200 {object} httputil.Envelope{data=Content}
// @Failure      400 {object} httputil.Envelope
// @Router       /content/{page} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	content, err := h.service.Get(r.Context(), chi.URLParam(r, "page"))
	if err != nil {
		h.respondError(w, r, "Failed to fetch page content", err)
		return
	}

	httputil.RespondSuccess(w, "", content, http.StatusOK)
}

// Replace overwrites all sections of a page
// @Summary      Replace page content
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        page    path string         true "Page"
// @Param        request body ReplaceRequest true "Sections"
// @Success      200 {object} httputil.Envelope{data=Content}
// @Router       /content/{page} [put]
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	actor, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req ReplaceRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	content, err := h.service.Replace(r.Context(), chi.URLParam(r, "page"), req.Sections, actor.ID)
	if err != nil {
		h.respondError(w, r, "Failed to update page content", err)
		return
	}

	httputil.RespondSuccess(w, "Page content updated successfully", content, http.StatusOK)
}

// AddSection appends a section
// @Summary      Add section
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        page    path string       true "Page"
// @Param        request body SectionInput true "Section"
// @Success      200 {object} httputil.Envelope{data=Content}
// @Failure      404 {object} httputil.Envelope
// @Router       /content/{page}/sections [post]
func (h *Handler) AddSection(w http.ResponseWriter, r *http.Request) {
	actor, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var in SectionInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	content, err := h.service.AddSection(r.Context(), chi.URLParam(r, "page"), in, actor.ID)
	if err != nil {
		h.respondError(w, r, "Failed to add section", err)
		return
	}

	httputil.RespondSuccess(w, "Section added successfully", content, http.StatusOK)
}

// UpdateSection merges fields into one section
// @Summary      Update section
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        page      path string       true "Page"
// @Param        sectionId path string       true "Section ID"
// @Param        request   body SectionInput true "Fields to change"
// @Success      200 {object} httputil.Envelope{data=Content}
// @Failure      404 {object} httputil.Envelope
// @Router       /content/{page}/sections/{sectionId} [put]
func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	actor, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var in SectionInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	content, err := h.service.UpdateSection(r.Context(), chi.URLParam(r, "page"), chi.URLParam(r, "sectionId"), in, actor.ID)
	if err != nil {
		h.respondError(w, r, "Failed to update section", err)
		return
	}

	httputil.RespondSuccess(w, "Section updated successfully", content, http.StatusOK)
}

// DeleteSection removes one section
// @Summary      Delete section
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        page      path string true "Page"
// @Param        sectionId path string true "Section ID"
// @Success      200 {object} httputil.Envelope{data=Content}
// @Failure      404 {object} httputil.Envelope
// @Router       /content/{page}/sections/{sectionId} [delete]
func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	actor, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	content, err := h.service.DeleteSection(r.Context(), chi.URLParam(r, "page"), chi.URLParam(r, "sectionId"), actor.ID)
	if err != nil {
		h.respondError(w, r, "Failed to delete section", err)
		return
	}

	httputil.RespondSuccess(w, "Section deleted successfully", content, http.StatusOK)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, fallback string, err error) {
	switch {
	case errors.Is(err, ErrInvalidPage):
		httputil.RespondErrorWithCode(w, "Invalid page.", httputil.CodeInvalidPage, http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		httputil.RespondErrorWithCode(w, "Page content not found", httputil.CodeNotFound, http.StatusNotFound)
	case errors.Is(err, ErrSectionNotFound):
		httputil.RespondErrorWithCode(w, "Section not found", httputil.CodeNotFound, http.StatusNotFound)
	case errors.Is(err, ErrSectionIDRequired):
		httputil.RespondErrorWithCode(w, "Section ID is required.", httputil.CodeValidationFailed, http.StatusBadRequest)
	default:
		logging.GetLoggerFromContext(r.Context()).Error("page content request failed", "error", err.Error())
		httputil.RespondInternalError(w, fallback, err, h.exposeErrors)
	}
}
