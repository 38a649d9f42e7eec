package handler

import (
	"log/slog"
	"net/http"

	"giftlist/internal/domain"
	"giftlist/internal/httputil"
	"giftlist/internal/service"
)

// GroupHandler exposes group CRUD over HTTP. Permission gating happens in
// middleware before these run; resource-scope checks live in the service.
type GroupHandler struct {
	groups *service.GroupService
	logger *slog.Logger
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groups *service.GroupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{groups: groups, logger: logger}
}

// Create handles POST /api/v1/groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	var req service.CreateGroupRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	group, err := h.groups.Create(r.Context(), caller, &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, group)
}

// List handles GET /api/v1/groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List(r.Context(), r.URL.Query().Get("include"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, groups)
}

// Get handles GET /api/v1/groups/{uuid}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	group, err := h.groups.Get(r.Context(), caller, r.PathValue("uuid"), r.URL.Query().Get("include"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, group)
}

// Replace handles PUT /api/v1/groups/{uuid}: all mandatory fields required.
func (h *GroupHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// Patch handles PATCH /api/v1/groups/{uuid}: present fields only.
func (h *GroupHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *GroupHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	var req service.UpdateGroupRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	group, err := h.groups.Update(r.Context(), caller, r.PathValue("uuid"), &req, full)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, group)
}

// Delete handles DELETE /api/v1/groups/{uuid}.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	if err := h.groups.Delete(r.Context(), caller, r.PathValue("uuid")); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
