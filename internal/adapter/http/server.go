package adapthttp

import (
	"net/http"
	"time"

	"heartcare/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the optional single sign-on provider.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Services groups the application services the HTTP adapter drives.
type Services struct {
	CheckIn    *app.CheckInService
	Surveys    *app.SurveyService
	Points     *app.PointsService
	Trend      *app.TrendService
	Education  *app.EducationService
	Medication *app.MedicationService
	Auth       *app.AuthService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	checkin    *app.CheckInService
	surveys    *app.SurveyService
	points     *app.PointsService
	trend      *app.TrendService
	education  *app.EducationService
	medication *app.MedicationService
	authSvc    *app.AuthService

	oidcConfig  OIDCConfig
	sessionTTL  time.Duration
	disableAuth bool
	log         logrus.FieldLogger
}

// New creates a Server wired to the given application services.
func New(svc Services, oidcCfg OIDCConfig, sessionTTL time.Duration, log logrus.FieldLogger) *Server {
	if sessionTTL <= 0 {
		sessionTTL = app.DefaultSessionTTL
	}
	return &Server{
		checkin:    svc.CheckIn,
		surveys:    svc.Surveys,
		points:     svc.Points,
		trend:      svc.Trend,
		education:  svc.Education,
		medication: svc.Medication,
		authSvc:    svc.Auth,
		oidcConfig: oidcCfg,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// WithoutAuth turns off session checks on every route.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/setup", s.handleSetup)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	api.Handle("/auth/session", s.protect(s.handleSession))

	api.Handle("/profile", s.protect(s.handleProfile))
	api.Handle("/signin", s.protect(s.handleSignIn))
	api.Handle("/points", s.protect(s.handlePoints))
	api.Handle("/rewards", s.protect(s.handleRewards))
	api.Handle("/rewards/redeem", s.protect(s.handleRedeem))

	api.Handle("/foods", s.protect(s.handleFoods))
	api.Handle("/draft", s.protect(s.handleDraft))
	api.Handle("/draft/intake", s.protect(s.handleDraftIntake))
	api.Handle("/draft/output", s.protect(s.handleDraftOutput))
	api.Handle("/draft/symptoms", s.protect(s.handleDraftSymptoms))
	api.Handle("/draft/note", s.protect(s.handleDraftNote))
	api.Handle("/logs", s.protect(s.handleLogs))
	api.Handle("/trend/weight", s.protect(s.handleTrendWeight))

	api.Handle("/surveys", s.protect(s.handleSurveys))
	api.Handle("/survey", s.protect(s.handleSurvey))
	api.Handle("/survey/start", s.protect(s.handleSurveyStart))
	api.Handle("/survey/answer", s.protect(s.handleSurveyAnswer))
	api.Handle("/survey/back", s.protect(s.handleSurveyBack))
	api.Handle("/survey/submit", s.protect(s.handleSurveySubmit))
	api.Handle("/survey/close", s.protect(s.handleSurveyClose))

	api.Handle("/education", s.protect(s.handleEducation))
	api.Handle("/education/read", s.protect(s.handleEducationRead))
	api.Handle("/education/favorite", s.protect(s.handleEducationFavorite))
	api.Handle("/education/favorites", s.protect(s.handleEducationFavorites))
	api.Handle("/medications", s.protect(s.handleMedications))
	api.Handle("/medications/toggle", s.protect(s.handleMedicationToggle))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", http.NotFoundHandler())

	return s.loggingMiddleware(withNoCache(root))
}
