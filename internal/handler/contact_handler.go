package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sentinel-defense/backend/internal/model"
	"github.com/sentinel-defense/backend/internal/service"
	"github.com/sentinel-defense/backend/pkg/auth"
)

const maxContactBodyBytes = 64 << 10

// ContactHandler handles contact form submission and operator listing.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type submitResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type validationResponse struct {
	Error  string               `json:"error"`
	Fields []service.FieldError `json:"fields"`
}

// Submit handles POST /api/contact.
// Field rules live in service.ValidateContact; every failing field is
// reported in one 400 response.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)

	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
			return
		}
		writeValidation(w, service.MalformedPayload())
		return
	}

	sub, err := h.contactService.Submit(r.Context(), payload)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeValidation(w, verr)
			return
		}
		slog.Error("contact submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{Success: true, ID: sub.ID})
}

func writeValidation(w http.ResponseWriter, verr *service.ValidationError) {
	writeJSON(w, http.StatusBadRequest, validationResponse{
		Error:  "validation_failed",
		Fields: verr.Fields,
	})
}

// listResponse is the JSON response for GET /api/contact-submissions.
type listResponse struct {
	Submissions []*model.ContactSubmission `json:"submissions"`
}

// List handles GET /api/contact-submissions (operators only).
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !auth.IsOperatorFromContext(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	subs, err := h.contactService.ListAll(r.Context())
	if err != nil {
		slog.Error("contact list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}

	// Return [] not null for empty lists
	if subs == nil {
		subs = []*model.ContactSubmission{}
	}
	writeJSON(w, http.StatusOK, listResponse{Submissions: subs})
}

type interestsResponse struct {
	Interests []string `json:"interests"`
}

// Interests handles GET /api/interests.
func (h *ContactHandler) Interests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, interestsResponse{Interests: model.Interests})
}
