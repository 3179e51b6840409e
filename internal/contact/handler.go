package contact

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
)

const defaultPageSize = 20

type Handler struct {
	service      *Service
	exposeErrors bool
}

func NewHandler(service *Service, exposeErrors bool) *Handler {
	return &Handler{service: service, exposeErrors: exposeErrors}
}

// Submit stores a contact form message
// @Summary      Submit contact form
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request body SubmitInput true "Message"
// @Success      201 {object} httputil.Envelope{data=Contact}
// @Failure      400 {object} httputil.Envelope
// @Failure      429 {object} httputil.Envelope
// @Router       /contact [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var in SubmitInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	c, err := h.service.Submit(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrFieldsRequired):
			httputil.RespondErrorWithCode(w, "All fields are required.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmail):
			httputil.RespondErrorWithCode(w, "Please provide a valid email", httputil.CodeValidationFailed, http.StatusBadRequest)
		default:
			logger.Error("submit contact form failed", "error", err.Error())
			httputil.RespondInternalError(w, "Error submitting contact form.", err, h.exposeErrors)
		}
		return
	}

	logger.Info("contact form submitted", "contact_id", c.ID)
	httputil.RespondSuccess(w, "Thank you for contacting us! We will get back to you soon.", c, http.StatusCreated)
}

// Inbox returns a page of messages
// @Summary      Contact inbox
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "new, read, replied or archived"
// @Param        search query string false "Matches name, email or message"
// @Param        page   query int    false "Page number" default(1)
// @Param        limit  query int    false "Page size" default(20)
// @Success      200 {object} httputil.ListEnvelope{data=[]Contact}
// @Router       /contact/inbox [get]
func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) {
	page := httputil.ParsePage(r, defaultPageSize)
	query := r.URL.Query()

	contacts, total, err := h.service.List(r.Context(), Filter{
		Status: Status(query.Get("status")),
		Search: strings.TrimSpace(query.Get("search")),
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("list inbox failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error fetching inbox.", err, h.exposeErrors)
		return
	}

	httputil.RespondPage(w, contacts, len(contacts), total, page)
}

// Stats counts messages per status
// @Summary      Inbox statistics
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} httputil.Envelope{data=Stats}
// @Router       /contact/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("inbox stats failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error fetching stats.", err, h.exposeErrors)
		return
	}

	httputil.RespondSuccess(w, "", stats, http.StatusOK)
}

// Update changes status and notes
// @Summary      Update contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string      true "Contact ID"
// @Param        request body UpdateInput true "Status and notes"
// @Success      200 {object} httputil.Envelope{data=Contact}
// @Failure      404 {object} httputil.Envelope
// @Router       /contact/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "Contact message not found.", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	var in UpdateInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	c, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httputil.RespondErrorWithCode(w, "Contact message not found.", httputil.CodeNotFound, http.StatusNotFound)
		case errors.Is(err, ErrInvalidStatus):
			httputil.RespondErrorWithCode(w, "Invalid status.", httputil.CodeValidationFailed, http.StatusBadRequest)
		default:
			logging.GetLoggerFromContext(r.Context()).Error("update contact failed", "error", err.Error())
			httputil.RespondInternalError(w, "Error updating contact.", err, h.exposeErrors)
		}
		return
	}

	httputil.RespondSuccess(w, "Contact updated successfully.", c, http.StatusOK)
}

// Delete removes a message
// @Summary      Delete contact message
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Contact ID"
// @Success      200 {object} httputil.Envelope
// @Failure      404 {object} httputil.Envelope
// @Router       /contact/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "Contact message not found.", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "Contact message not found.", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logging.GetLoggerFromContext(r.Context()).Error("delete contact failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error deleting contact.", err, h.exposeErrors)
		return
	}

	httputil.RespondSuccess(w, "Contact deleted successfully.", nil, http.StatusOK)
}
