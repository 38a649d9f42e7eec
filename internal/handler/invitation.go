package handler

import (
	"log/slog"
	"net/http"

	"giftlist/internal/domain"
	"giftlist/internal/httputil"
	"giftlist/internal/service"
)

// InvitationHandler exposes invitation CRUD over HTTP.
type InvitationHandler struct {
	invitations *service.InvitationService
	logger      *slog.Logger
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitations *service.InvitationService, logger *slog.Logger) *InvitationHandler {
	return &InvitationHandler{invitations: invitations, logger: logger}
}

// Create handles POST /api/v1/invitations.
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	var req service.CreateInvitationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	invitation, err := h.invitations.Create(r.Context(), caller, &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, invitation)
}

// List handles GET /api/v1/invitations?groupUuid=.
func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	query := r.URL.Query()
	invitations, err := h.invitations.List(r.Context(), caller, query.Get("groupUuid"), query.Get("include"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, invitations)
}

// Get handles GET /api/v1/invitations/{uuid}.
func (h *InvitationHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	invitation, err := h.invitations.Get(r.Context(), caller, r.PathValue("uuid"), r.URL.Query().Get("include"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, invitation)
}

// Replace handles PUT /api/v1/invitations/{uuid}.
func (h *InvitationHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// Patch handles PATCH /api/v1/invitations/{uuid}.
func (h *InvitationHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *InvitationHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	var req service.UpdateInvitationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	invitation, err := h.invitations.Update(r.Context(), caller, r.PathValue("uuid"), &req, full)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, invitation)
}

// Delete handles DELETE /api/v1/invitations/{uuid}.
func (h *InvitationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	if err := h.invitations.Delete(r.Context(), caller, r.PathValue("uuid")); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
