// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	admindashfeature "github.com/postline-app/console/internal/app/features/admindash"
	dashboardfeature "github.com/postline-app/console/internal/app/features/dashboard"
	errorsfeature "github.com/postline-app/console/internal/app/features/errors"
	googlelocationfeature "github.com/postline-app/console/internal/app/features/googlelocation"
	healthfeature "github.com/postline-app/console/internal/app/features/health"
	homefeature "github.com/postline-app/console/internal/app/features/home"
	loginfeature "github.com/postline-app/console/internal/app/features/login"
	logoutfeature "github.com/postline-app/console/internal/app/features/logout"
	profilefeature "github.com/postline-app/console/internal/app/features/profile"
	"github.com/postline-app/console/internal/app/resources"
	"github.com/postline-app/console/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, the backend client, and the
// Startup hook have completed. It boots the template engine, applies the
// session and CSRF middleware, and mounts one feature router per URL
// area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	csrfProtect := csrf.Protect(
		[]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
	)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via
	// auth.CurrentUser(r), and the bearer token to the API client.
	r.Use(sessionMgr.LoadSessionUser)
	r.Use(csrfProtect)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Backend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets are compiled into the binary.
	r.Handle("/static/*", http.FileServerFS(resources.StaticFS))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.Backend, sessionMgr, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Signed-in landing page
	dashboardHandler := dashboardfeature.NewHandler(logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Admin dashboard: user management, activity, stats
	adminHandler := admindashfeature.NewHandler(deps.Backend, logger)
	r.Mount("/admin", admindashfeature.Routes(adminHandler, sessionMgr))

	// Self-service profile
	profileHandler := profilefeature.NewHandler(deps.Backend, logger)
	r.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))

	// Google Business Profile location selection
	googleHandler := googlelocationfeature.NewHandler(deps.Backend, logger)
	r.Mount("/social/google-business", googlelocationfeature.Routes(googleHandler, sessionMgr))

	return r, nil
}
