package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	adapthttp "heartcare/internal/adapter/http"
	"heartcare/internal/adapter/memory"
	"heartcare/internal/app"
	"heartcare/internal/config"
	"heartcare/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := cfg.Log.NewLogger()

	if err := domain.ValidateInstruments(); err != nil {
		log.Fatalf("instrument catalog: %v", err)
	}

	seed := memory.DefaultSeed()
	seed.Profile.Points = cfg.Points.Initial
	store := memory.New(seed)

	rewards := app.Rewards{
		DailyLog: cfg.Points.DailyLog,
		Survey:   cfg.Points.Survey,
		EduRead:  cfg.Points.EduRead,
		SignIn:   cfg.Points.SignIn,
	}
	points := app.NewPointsService(store, rewards, log)
	authSvc := app.NewAuthService(store, store.NewSessionRepo(), cfg.Auth.SessionTTL)

	svc := adapthttp.Services{
		CheckIn:    app.NewCheckInService(domain.Foods, store, points, rewards.DailyLog, log),
		Surveys:    app.NewSurveyService(domain.Instruments, points, rewards.Survey, log),
		Points:     points,
		Trend:      app.NewTrendService(store, store, cfg.Trend.Window),
		Education:  app.NewEducationService(store, points, rewards.EduRead, log),
		Medication: app.NewMedicationService(store, log),
		Auth:       authSvc,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	oidcCfg, err := setupOIDC(ctx, cfg.OIDC)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	srv := adapthttp.New(svc, oidcCfg, cfg.Auth.SessionTTL, log)
	if cfg.Auth.Disabled {
		log.Warn("authentication disabled")
		srv = srv.WithoutAuth()
	}

	go purgeSessions(ctx, authSvc, log)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{"addr": cfg.Addr, "sso": oidcCfg.Enabled}).Info("listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Info("server stopped")
}

func setupOIDC(ctx context.Context, c config.OIDCConfig) (adapthttp.OIDCConfig, error) {
	if !c.Enabled() {
		return adapthttp.OIDCConfig{}, nil
	}
	provider, err := oidc.NewProvider(ctx, c.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

func purgeSessions(ctx context.Context, auth *app.AuthService, log logrus.FieldLogger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := auth.PurgeExpired(ctx); err != nil {
				log.WithError(err).Warn("purge expired sessions")
			}
		}
	}
}
