package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/redmonkez12/advisory-cms/internal/httputil"
	"github.com/redmonkez12/advisory-cms/internal/logging"
)

// multipart framing allowance on top of the file limit
const formOverhead = 1 << 20

type Handler struct {
	service      *Service
	maxBytes     int64
	exposeErrors bool
}

func NewHandler(service *Service, maxBytes int64, exposeErrors bool) *Handler {
	return &Handler{service: service, maxBytes: maxBytes, exposeErrors: exposeErrors}
}

func (h *Handler) tooLarge(w http.ResponseWriter) {
	msg := fmt.Sprintf("File size too large. Maximum size is %dMB.", h.maxBytes>>20)
	httputil.RespondErrorWithCode(w, msg, httputil.CodeFileTooLarge, http.StatusBadRequest)
}

// Upload stores a single image
// @Summary      Upload image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file   formData file   true  "File"
// @Param        folder query    string false "Target folder" default(business-ally)
// @Success      200 {object} httputil.Envelope{data=Result}
// @Failure      400 {object} httputil.Envelope
// @Router       /upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+formOverhead)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(w)
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			httputil.RespondErrorWithCode(w, "Upload error: "+err.Error(), httputil.CodeInvalidRequestBody, http.StatusBadRequest)
			return
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondErrorWithCode(w, "No file uploaded.", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		h.tooLarge(w)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("failed to read upload", "error", err.Error())
		httputil.RespondInternalError(w, "Error uploading image.", err, h.exposeErrors)
		return
	}

	res, err := h.service.Upload(r.Context(), r.URL.Query().Get("folder"), File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFile):
			httputil.RespondErrorWithCode(w, "No file uploaded.", httputil.CodeValidationFailed, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidFolder):
			httputil.RespondErrorWithCode(w, "Invalid folder.", httputil.CodeValidationFailed, http.StatusBadRequest)
		default:
			logger.Error("upload failed", "error", err.Error())
			httputil.RespondInternalError(w, "Error uploading image.", err, h.exposeErrors)
		}
		return
	}

	httputil.RespondSuccess(w, "Image uploaded successfully.", res, http.StatusOK)
}
