package handler

import (
	"log/slog"
	"net/http"

	"giftlist/internal/domain"
	"giftlist/internal/httputil"
	"giftlist/internal/service"
)

// WishListHandler exposes wishlist item CRUD over HTTP.
type WishListHandler struct {
	wishLists *service.WishListService
	logger    *slog.Logger
}

// NewWishListHandler creates a new wishlist handler
func NewWishListHandler(wishLists *service.WishListService, logger *slog.Logger) *WishListHandler {
	return &WishListHandler{wishLists: wishLists, logger: logger}
}

// Create handles POST /api/v1/wishlists.
func (h *WishListHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	var req service.CreateWishListRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	item, err := h.wishLists.Create(r.Context(), caller, &req)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// List handles GET /api/v1/wishlists?groupUuid=.
func (h *WishListHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	query := r.URL.Query()
	items, err := h.wishLists.List(r.Context(), caller, query.Get("groupUuid"), query.Get("include"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, items)
}

// Get handles GET /api/v1/wishlists/{uuid}.
func (h *WishListHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	item, err := h.wishLists.Get(r.Context(), caller, r.PathValue("uuid"), r.URL.Query().Get("include"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, item)
}

// Replace handles PUT /api/v1/wishlists/{uuid}.
func (h *WishListHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// Patch handles PATCH /api/v1/wishlists/{uuid}.
func (h *WishListHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *WishListHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	var req service.UpdateWishListRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	item, err := h.wishLists.Update(r.Context(), caller, r.PathValue("uuid"), &req, full)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/wishlists/{uuid}.
func (h *WishListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetIdentity(r)
	if caller == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}

	if err := h.wishLists.Delete(r.Context(), caller, r.PathValue("uuid")); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
