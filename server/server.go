package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/jrsteele09/speet-admin/auth"
	"github.com/jrsteele09/speet-admin/gateway"
	"github.com/jrsteele09/speet-admin/internal/config"
	"github.com/jrsteele09/speet-admin/internal/inflight"
	"github.com/jrsteele09/speet-admin/internal/keys"
	"github.com/jrsteele09/speet-admin/internal/listcache"
	"github.com/jrsteele09/speet-admin/recovery"
	"github.com/jrsteele09/speet-admin/sessions"
	"github.com/rs/zerolog/log"
)

// Deps are the collaborators the server cannot build from configuration alone.
type Deps struct {
	SessionRepo sessions.Repo
	HTTPClient  *http.Client // used for SPEET API calls; nil means http.DefaultClient
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PRODUCTION")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	keys      keys.Set
	sessions  *sessions.Manager
	api       *gateway.Client
	auth      *auth.Service
	recovery  *recovery.Sequencer
	cache     *listcache.Cache
	guard     *inflight.Guard
	templates map[string]*template.Template
}

func New(config config.Config, deps Deps) (*Server, error) {
	if deps.SessionRepo == nil {
		return nil, fmt.Errorf("[Server New] a session repository is required")
	}
	secret, err := config.GetSessionSecret()
	if err != nil {
		return nil, fmt.Errorf("[Server New] %w", err)
	}
	keySet, err := keys.Derive(secret)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to derive keys: %w", err)
	}

	httpClient := deps.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	api := gateway.New(config.GetAPIBaseURL(), httpClient)
	authService := auth.NewService(api.Public())

	manager := sessions.NewManager(deps.SessionRepo, sessions.NewCookieCodec(keySet.SessionCookie), sessions.CookieOptions{
		Secure: config.GetSessionCookieSecure(),
		MaxAge: config.GetSessionMaxAge(),
	})
	sequencer := recovery.NewSequencer(authService, recovery.Routes{
		RequestCode: RouteForgotPassword,
		VerifyCode:  RouteVerifyOTP,
		SetPassword: RouteResetPassword,
		Login:       RouteAuthLogin,
	})

	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		keys:     keySet,
		sessions: manager,
		api:      api,
		auth:     authService,
		recovery: sequencer,
		cache:    listcache.New(config.GetListCacheTTL()),
		guard:    inflight.New(),
	}

	if s.templates, err = loadTemplates(); err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if !s.config.IsDev() {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Debug().Msgf("[%-19s] %s", colouredMethod(method), path)
}

func logError(method, path, error string) {
	log.Error().Msgf("[%-19s] %s %s", colouredMethod(method), path, Red+error+ResetColor)
}

func colouredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}
