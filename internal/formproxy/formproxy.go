// Copyright (c) 2026 Tripgate. All rights reserved.

/*
Package formproxy relays contact-form submissions to the content source.

The browser posts multipart form data to the gateway; the proxy rebuilds the
submission and forwards it to the form plugin's feedback endpoint, attaching
basic-auth credentials the browser must never see. The upstream's JSON verdict
("mail_sent", "validation_failed", ...) passes back to the client verbatim so
the renderer can show field-level feedback.
*/
package formproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nguyenvo/tripgate/internal/platform/apperr"
	"github.com/nguyenvo/tripgate/internal/platform/constants"
	"github.com/nguyenvo/tripgate/internal/platform/respond"
)

// formIDField is the multipart field naming the target form. It addresses
// the upstream endpoint and is not forwarded as form content.
const formIDField = "_wpcf7"

// maxSubmissionBytes bounds an incoming submission; contact forms carry
// short text fields only.
const maxSubmissionBytes = 1 << 20

// Options holds the upstream endpoint and credentials for the proxy.
type Options struct {
	// BaseURL is the content-source origin (scheme://host).
	BaseURL string

	// BasicAuthUser / BasicAuthPass are attached only when both are present.
	BasicAuthUser string
	BasicAuthPass string
}

func (o Options) hasBasicAuth() bool {
	return o.BasicAuthUser != "" && o.BasicAuthPass != ""
}

// Handler implements the HTTP layer for the form proxy.
type Handler struct {
	options Options
	client  *http.Client
	logger  *slog.Logger
}

// NewHandler constructs a form proxy [Handler].
func NewHandler(options Options, logger *slog.Logger) *Handler {
	return &Handler{
		options: options,
		client:  &http.Client{Timeout: constants.CMSRequestTimeout},
		logger:  logger,
	}
}

// Routes returns a [chi.Router] exposing the submission endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.submit)
	return router
}

// mailFailed is the structured fallback verdict when the upstream cannot be
// reached or answers with something other than JSON.
type mailFailed struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

/*
POST /api/contact.

Description: Forwards a multipart contact-form submission to the content
source's form-feedback endpoint and relays the JSON verdict.

Request:
  - body: multipart form data; the _wpcf7 field selects the target form,
    every other string field is forwarded as submitted

Response:
  - upstream status: Upstream JSON verdict, verbatim
  - 400: ErrValidation: Not multipart, or the _wpcf7 field is missing
  - 500: mail_failed verdict: Upstream unreachable or returned non-JSON
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {

	// 1. Parse the browser's submission.
	request.Body = http.MaxBytesReader(writer, request.Body, maxSubmissionBytes)
	if err := request.ParseMultipartForm(maxSubmissionBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Request body must be multipart form data"))
		return
	}

	formID := request.FormValue(formIDField)
	if formID == "" {
		respond.Error(writer, request, apperr.ValidationError("Missing form identifier",
			apperr.FieldError{Field: formIDField, Message: "required"}))
		return
	}

	// 2. Rebuild the submission for the upstream, minus the addressing field.
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for field, values := range request.MultipartForm.Value {
		if field == formIDField {
			continue
		}
		for _, value := range values {
			if err := form.WriteField(field, value); err != nil {
				respond.Error(writer, request, err)
				return
			}
		}
	}
	if err := form.Close(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 3. Forward and relay the verdict.
	verdict, status, err := handler.forward(request.Context(), formID, form.FormDataContentType(), &body)
	if err != nil {
		handler.logger.ErrorContext(request.Context(), "form_upstream_failed",
			slog.String("form_id", formID),
			slog.Any("error", err),
		)
		respond.JSON(writer, http.StatusInternalServerError, mailFailed{
			Status:  "mail_failed",
			Message: "The message could not be delivered. Please try again later.",
		})
		return
	}

	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = writer.Write(verdict)
}

// forward posts the rebuilt submission upstream and returns the raw JSON
// verdict with its status code. A non-JSON answer is an error: the form
// plugin always speaks JSON, so anything else means the mail pipeline broke.
func (handler *Handler) forward(ctx context.Context, formID, contentType string, body io.Reader) ([]byte, int, error) {
	endpoint := handler.options.BaseURL + fmt.Sprintf(constants.CMSFormFeedbackPathFormat, formID)

	upstreamRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, 0, err
	}
	upstreamRequest.Header.Set("Content-Type", contentType)
	if handler.options.hasBasicAuth() {
		upstreamRequest.SetBasicAuth(handler.options.BasicAuthUser, handler.options.BasicAuthPass)
	}

	upstream, err := handler.client.Do(upstreamRequest)
	if err != nil {
		return nil, 0, err
	}
	defer upstream.Body.Close()

	verdict, err := io.ReadAll(io.LimitReader(upstream.Body, maxSubmissionBytes))
	if err != nil {
		return nil, 0, err
	}
	if !json.Valid(verdict) {
		return nil, 0, fmt.Errorf("formproxy: upstream returned non-JSON (status %d)", upstream.StatusCode)
	}

	return verdict, upstream.StatusCode, nil
}
