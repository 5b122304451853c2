package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/rafflebot/internal/config"
	"github.com/susu3304/rafflebot/internal/db"
	"github.com/susu3304/rafflebot/internal/raffle"
	"golang.org/x/oauth2"
)

const discordAPIBase = "https://discord.com/api"

// Archive is the read side of the standings archive. *db.DB implements it.
type Archive interface {
	LastStandings(ctx context.Context, limit int) (*db.ArchivedWeek, error)
	RecentDraws(ctx context.Context, limit int) ([]db.Draw, error)
}

type API struct {
	router      *mux.Router
	engine      *raffle.Engine
	archive     Archive
	config      *config.Config
	oauthConfig *oauth2.Config
	jwtSecret   []byte
	discordBase string
	httpClient  *http.Client
	server      *http.Server
}

// New builds the web API over a live engine. archive may be nil when no
// database is configured.
func New(cfg *config.Config, engine *raffle.Engine, archive Archive) *API {
	api := &API{
		router:      mux.NewRouter(),
		engine:      engine,
		archive:     archive,
		config:      cfg,
		jwtSecret:   []byte(cfg.JWTSecret),
		discordBase: discordAPIBase,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURI,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://discord.com/api/oauth2/authorize",
				TokenURL: "https://discord.com/api/oauth2/token",
			},
		},
	}

	api.setupRoutes()
	api.server = &http.Server{
		Addr:              cfg.WebBind,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return api
}

func (a *API) setupRoutes() {
	a.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Auth endpoints
	a.router.HandleFunc("/api/auth/login", a.handleLogin).Methods("GET")
	a.router.HandleFunc("/api/auth/callback", a.handleCallback).Methods("GET")
	a.router.HandleFunc("/api/auth/logout", a.handleLogout).Methods("POST")

	// Public endpoints
	a.router.HandleFunc("/api/leaderboard", a.handleLeaderboard).Methods("GET")
	a.router.HandleFunc("/api/users/{user_id}/tickets", a.handleUserTickets).Methods("GET")
	a.router.HandleFunc("/api/history", a.handleHistory).Methods("GET")
	a.router.HandleFunc("/api/draws", a.handleDraws).Methods("GET")

	// Protected endpoints
	protected := a.router.PathPrefix("/api/me").Subrouter()
	protected.Use(a.authMiddleware)
	protected.HandleFunc("/tickets", a.handleMyTickets).Methods("GET")
}

// Handler returns the router wrapped with CORS.
func (a *API) Handler() http.Handler {
	// With a wildcard origin credentials must stay disabled.
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(a.router)
}

// Start serves until Shutdown is called.
func (a *API) Start() error {
	logrus.Infof("API server listening on http://%s", a.config.WebBind)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
