package blog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

const defaultPageSize = 10

type Handler struct {
	service      *Service
	exposeErrors bool
}

func NewHandler(service *Service, exposeErrors bool) *Handler {
	return &Handler{service: service, exposeErrors: exposeErrors}
}

// List returns a page of posts. Anonymous callers only see published posts.
// @Summary      List blog posts
// @Tags         blog
// @Produce      json
// @Param        status   query string false "draft or published (authenticated callers only)"
// @Param        category query string false "Category"
// @Param        page     query int    false "Page number" default(1)
// @Param        limit    query int    false "Page size" default(10)
// @Success      200 {object} httputil.ListEnvelope{data=[]Post}
// @Router       /blog [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := httputil.ParsePage(r, defaultPageSize)
	query := r.URL.Query()

	f := Filter{
		Status:   StatusPublished,
		Category: query.Get("category"),
		Limit:    page.Limit,
		Offset:   page.Offset(),
	}
	if _, ok := user.FromContext(r.Context()); ok {
		f.Status = Status(query.Get("status"))
	}

	posts, total, err := h.service.List(r.Context(), f)
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("list blog posts failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error fetching blog posts.", err, h.exposeErrors)
		return
	}

	httputil.RespondPage(w, posts, len(posts), total, page)
}

// Get returns one post by id or slug
// @Summary      Get blog post
// @Tags         blog
// @Produce      json
// @Param        id path string true "Post ID or slug"
// @Success      200 {object} httputil.Envelope{data=Post}
// @Failure      404 {object} httputil.Envelope
// @Router       /blog/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	_, authenticated := user.FromContext(r.Context())

	post, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), !authenticated)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "Blog post not found.", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logging.GetLoggerFromContext(r.Context()).Error("get blog post failed", "error", err.Error())
		httputil.RespondInternalError(w, "Error fetching blog post.", err, h.exposeErrors)
		return
	}

	httputil.RespondSuccess(w, "", post, http.StatusOK)
}

// Create stores a post authored by the caller
// @Summary      Create blog post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body Input true "Post"
// @Success      201 {object} httputil.Envelope{data=Post}
// @Failure      400 {object} httputil.Envelope
// @Router       /blog [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	author, ok := user.FromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "No token provided. Authorization denied.", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var in Input
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	post, err := h.service.Create(r.Context(), author, in)
	if err != nil {
		h.respondWriteError(w, r, "Error creating blog post.", err)
		return
	}

	logging.GetLoggerFromContext(r.Context()).Info("blog post created", "post_id", post.ID, "author_id", author.ID)
	httputil.RespondSuccess(w, "Blog post created successfully.", post, http.StatusCreated)
}

// Update changes a post
// @Summary      Update blog post
// @Tags         blog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body Input true "Fields to change"
// @Success      200 {object} httputil.Envelope{data=Post}
// @Failure      400 {object} httputil.Envelope
// @Failure      404 {object} httputil.Envelope
// @Router       /blog/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "Blog post not found.", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	var in Input
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	post, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.respondWriteError(w, r, "Error updating blog post.", err)
		return
	}

	httputil.RespondSuccess(w, "Blog post updated successfully.", post, http.StatusOK)
}

// Delete removes a post
// @Summary      Delete blog post
// @Tags         blog
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200 {object} httputil.Envelope
// @Failure      404 {object} httputil.Envelope
// @Router       /blog/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "Blog post not found.", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondWriteError(w, r, "Error deleting blog post.", err)
		return
	}

	httputil.RespondSuccess(w, "Blog post deleted successfully.", nil, http.StatusOK)
}

func (h *Handler) respondWriteError(w http.ResponseWriter, r *http.Request, fallback string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httputil.RespondErrorWithCode(w, "Blog post not found.", httputil.CodeNotFound, http.StatusNotFound)
	case errors.Is(err, ErrDuplicateSlug):
		httputil.RespondErrorWithCode(w, "Blog post with this slug already exists.", httputil.CodeSlugAlreadyExists, http.StatusBadRequest)
	case errors.Is(err, ErrFieldsRequired):
		httputil.RespondErrorWithCode(w, "Please provide title, excerpt, and content.", httputil.CodeValidationFailed, http.StatusBadRequest)
	case errors.Is(err, ErrExcerptTooLong):
		httputil.RespondErrorWithCode(w, "Excerpt must be less than 300 characters", httputil.CodeValidationFailed, http.StatusBadRequest)
	case errors.Is(err, ErrInvalidStatus):
		httputil.RespondErrorWithCode(w, "Invalid status.", httputil.CodeValidationFailed, http.StatusBadRequest)
	default:
		logging.GetLoggerFromContext(r.Context()).Error("blog post write failed", "error", err.Error())
		httputil.RespondInternalError(w, fallback, err, h.exposeErrors)
	}
}
