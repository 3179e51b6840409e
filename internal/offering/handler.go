package offering

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
)

type Handler struct {
	service      *Service
	exposeErrors bool
}

func NewHandler(service *Service, exposeErrors bool) *Handler {
	return &Handler{service: service, exposeErrors: exposeErrors}
}

// List returns the catalogue
// @Summary      List services
// @Tags         services
// @Produce      json
// @Param        isActive query bool false "Filter on the active flag"
// @Success      200 {object} httputil.ListEnvelope{data=[]Offering}
// @Router       /services [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var isActive *bool
	if v, ok := r.URL.Query()["isActive"]; ok {
		active := len(v) > 0 && v[0] == "true"
		isActive = &active
	}

	services, err := h.service.List(r.Context(), isActive)
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("list services failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error fetching services.", err, h.exposeErrors)
		return
	}

	httputil.RespondList(w, services, len(services))
}

// Get returns one service by slug
// @Summary      Get service
// @Tags         services
// @Produce      json
// @Param        slug path string true "Service slug"
// @Success      200 {object} httputil.Envelope{data=Offering}
// @Failure      404 {object} httputil.Envelope
// @Router       /services/{slug} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "Service not found.", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logging.GetLoggerFromContext(r.Context()).Error("get service failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error fetching service.", err, h.exposeErrors)
		return
	}

	httputil.RespondSuccess(w, "", o, http.StatusOK)
}

// Create adds a service
// @Summary      Create service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body Input true "Service"
// @Success      201 {object} httputil.Envelope{data=Offering}
// @Failure      400 {object} httputil.Envelope
// @Router       /services [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	o, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.respondWriteError(w, r, "Error creating service.", err)
		return
	}

	httputil.RespondSuccess(w, "Service created successfully.", o, http.StatusCreated)
}

// Update changes a service
// @Summary      Update service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Service ID"
// @Param        request body Input true "Fields to change"
// @Success      200 {object} httputil.Envelope{data=Offering}
// @Failure      400 {object} httputil.Envelope
// @Failure      404 {object} httputil.Envelope
// @Router       /services/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "Service not found.", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	var in Input
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	o, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.respondWriteError(w, r, "Error updating service.", err)
		return
	}

	httputil.RespondSuccess(w, "Service updated successfully.", o, http.StatusOK)
}

// Delete removes a service
// @Summary      Delete service
// @Tags         services
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Service ID"
// @Success      200 {object} httputil.Envelope
// @Failure      404 {object} httputil.Envelope
// @Router       /services/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "Service not found.", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondWriteError(w, r, "Error deleting service.", err)
		return
	}

	httputil.RespondSuccess(w, "Service deleted successfully.", nil, http.StatusOK)
}

func (h *Handler) respondWriteError(w http.ResponseWriter, r *http.Request, fallback string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httputil.RespondErrorWithCode(w, "Service not found.", httputil.CodeNotFound, http.StatusNotFound)
	case errors.Is(err, ErrDuplicateSlug):
		httputil.RespondErrorWithCode(w, "Service with this slug already exists.", httputil.CodeSlugAlreadyExists, http.StatusBadRequest)
	case errors.Is(err, ErrFieldsRequired):
		httputil.RespondErrorWithCode(w, "Please provide title, shortDescription, description, and image.", httputil.CodeValidationFailed, http.StatusBadRequest)
	default:
		logging.GetLoggerFromContext(r.Context()).Error("service write failed", "error", err.Error())
		httputil.RespondInternalError(w, fallback, err, h.exposeErrors)
	}
}
