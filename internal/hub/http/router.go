package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/projecthub/projecthub/internal/hub/domain"
	"github.com/projecthub/projecthub/internal/hub/live"
	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/internal/hub/store"
	"github.com/projecthub/projecthub/pkg/httpx"
	"github.com/projecthub/projecthub/pkg/jwtx"
	"github.com/projecthub/projecthub/pkg/slogx"

	_ "github.com/projecthub/projecthub/api/hub" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AccountService *service.AccountService
	InviteService  *service.InviteService
	NotifyService  *service.NotifyService
	Live           *live.Hub

	// AcceptURL builds the shareable acceptance link for a raw token.
	AcceptURL func(token string) string
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvitations()
	r.registerNotifications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ProjectHub API
//	@version		0.1.0
//	@description	Invitation and notification service for ProjectHub workspaces. Accounts are created by
//	@description	redeeming capability-token invitations; notifications record the business events that
//	@description	follow and stream live over SSE.
//
//	@contact.name				ProjectHub Team
//	@contact.url				https://github.com/projecthub/projecthub
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /bootstrap - strict rate limit by IP (one-time setup endpoint)
	bootstrapHandler := &BootstrapHandler{AccountService: r.AccountService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	// Management surface: admins and managers only.
	createHandler := &InvitationCreateHandler{InviteService: r.InviteService, AcceptURL: r.AcceptURL}
	securedCreate := httpx.Chain(createHandler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole(domain.RoleAdmin, domain.RoleManager),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	listHandler := &InvitationListHandler{InviteService: r.InviteService}
	securedList := httpx.Chain(listHandler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole(domain.RoleAdmin, domain.RoleManager),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	cancelHandler := &InvitationCancelHandler{InviteService: r.InviteService}
	securedCancel := httpx.Chain(cancelHandler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole(domain.RoleAdmin, domain.RoleManager),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	resendHandler := &InvitationResendHandler{InviteService: r.InviteService, AcceptURL: r.AcceptURL}
	securedResend := httpx.Chain(resendHandler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyRole(domain.RoleAdmin, domain.RoleManager),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/invitations", securedCreate)
	r.Mux.Handle("GET /v1/invitations", securedList)
	r.Mux.Handle("DELETE /v1/invitations/{id}", securedCancel)
	r.Mux.Handle("POST /v1/invitations/{id}/resend", securedResend)

	// Public token surface: the invitee is anonymous until acceptance, so
	// these are rate limited by IP. Strict limits slow token probing on top
	// of the 256-bit token space.
	lookupHandler := &InvitationLookupHandler{InviteService: r.InviteService}
	r.Mux.Handle("GET /v1/invitations/token/{token}",
		httpx.Chain(lookupHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	acceptHandler := &InvitationAcceptHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /v1/invitations/accept/{token}",
		httpx.Chain(acceptHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	declineHandler := &InvitationDeclineHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /v1/invitations/decline/{token}",
		httpx.Chain(declineHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{NotifyService: r.NotifyService}

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	securedMarkRead := httpx.Chain(http.HandlerFunc(h.HandleMarkRead),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	securedMarkAllRead := httpx.Chain(http.HandlerFunc(h.HandleMarkAllRead),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /v1/notifications", securedList)
	r.Mux.Handle("PUT /v1/notifications/{id}/read", securedMarkRead)
	r.Mux.Handle("PUT /v1/notifications/read-all", securedMarkAllRead)
	r.Mux.Handle("DELETE /v1/notifications/{id}", securedDelete)

	// SSE stream: long-lived, so only connection attempts are rate limited.
	streamHandler := &NotificationStreamHandler{Live: r.Live}
	securedStream := httpx.Chain(streamHandler,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.Mux.Handle("GET /v1/notifications/stream", securedStream)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
