package handler

import (
	"log/slog"
	"net/http"

	"giftlist/internal/auth"
	"giftlist/internal/middleware"
	"giftlist/internal/roles"
	"giftlist/internal/service"
)

// RouterConfig collects everything route registration needs.
type RouterConfig struct {
	Codec    *auth.TokenCodec
	Resolver *auth.IdentityResolver
	Verifier auth.ProviderVerifier

	Groups      *service.GroupService
	Invitations *service.InvitationService
	WishLists   *service.WishListService

	Logger *slog.Logger
}

// NewRouter builds the full route table. Every /api/v1 route sits behind
// authentication plus its permission requirement; the gate runs before any
// handler loads a resource. Unmatched paths inside /api fall through to the
// JSON not-found body.
func NewRouter(cfg *RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Verifier, cfg.Resolver, cfg.Codec, cfg.Logger)
	userHandler := NewUserHandler(cfg.Logger)
	groupHandler := NewGroupHandler(cfg.Groups, cfg.Logger)
	invitationHandler := NewInvitationHandler(cfg.Invitations, cfg.Logger)
	wishListHandler := NewWishListHandler(cfg.WishLists, cfg.Logger)

	authenticate := middleware.Authenticate(cfg.Codec, cfg.Resolver, cfg.Logger)

	guard := func(h http.HandlerFunc, permissions ...string) http.Handler {
		return middleware.Chain(h, authenticate, middleware.RequirePermission(permissions...))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api", Status)
	mux.HandleFunc("GET /api/{$}", Status)
	mux.HandleFunc("GET /api/auth/federated", authHandler.FederatedLogin)

	mux.Handle("GET /api/v1/users/me", guard(userHandler.Me, roles.PermUserRead))

	mux.Handle("POST /api/v1/groups", guard(groupHandler.Create, roles.PermGroupWrite))
	mux.Handle("GET /api/v1/groups", guard(groupHandler.List, roles.PermGroupRead))
	mux.Handle("GET /api/v1/groups/{uuid}", guard(groupHandler.Get, roles.PermGroupRead))
	mux.Handle("PUT /api/v1/groups/{uuid}", guard(groupHandler.Replace, roles.PermGroupWrite))
	mux.Handle("PATCH /api/v1/groups/{uuid}", guard(groupHandler.Patch, roles.PermGroupWrite))
	mux.Handle("DELETE /api/v1/groups/{uuid}", guard(groupHandler.Delete, roles.PermGroupWrite))

	mux.Handle("POST /api/v1/invitations", guard(invitationHandler.Create, roles.PermInvitationWrite))
	mux.Handle("GET /api/v1/invitations", guard(invitationHandler.List, roles.PermInvitationRead))
	mux.Handle("GET /api/v1/invitations/{uuid}", guard(invitationHandler.Get, roles.PermInvitationRead))
	mux.Handle("PUT /api/v1/invitations/{uuid}", guard(invitationHandler.Replace, roles.PermInvitationWrite))
	mux.Handle("PATCH /api/v1/invitations/{uuid}", guard(invitationHandler.Patch, roles.PermInvitationWrite))
	mux.Handle("DELETE /api/v1/invitations/{uuid}", guard(invitationHandler.Delete, roles.PermInvitationWrite))

	mux.Handle("POST /api/v1/wishlists", guard(wishListHandler.Create, roles.PermWishListWrite))
	mux.Handle("GET /api/v1/wishlists", guard(wishListHandler.List, roles.PermWishListRead))
	mux.Handle("GET /api/v1/wishlists/{uuid}", guard(wishListHandler.Get, roles.PermWishListRead))
	mux.Handle("PUT /api/v1/wishlists/{uuid}", guard(wishListHandler.Replace, roles.PermWishListWrite))
	mux.Handle("PATCH /api/v1/wishlists/{uuid}", guard(wishListHandler.Patch, roles.PermWishListWrite))
	mux.Handle("DELETE /api/v1/wishlists/{uuid}", guard(wishListHandler.Delete, roles.PermWishListWrite))

	mux.HandleFunc("/", NotFound)

	return mux
}
