package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New(), "heartcare", t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour || cfg.Auth.Disabled {
		t.Errorf("unexpected auth defaults %+v", cfg.Auth)
	}
	want := PointsConfig{Initial: 120, DailyLog: 20, Survey: 10, EduRead: 5, SignIn: 5}
	if cfg.Points != want {
		t.Errorf("points %+v; want %+v", cfg.Points, want)
	}
	if cfg.Trend.Window != 7 || cfg.OIDC.Enabled() {
		t.Errorf("trend %+v oidc %+v", cfg.Trend, cfg.OIDC)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	toml := `
addr = ":9090"

[log]
format = "json"

[points]
initial = 300
sign_in = 8
`
	if err := os.WriteFile(filepath.Join(dir, "heartcare.toml"), []byte(toml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HEARTCARE_ADDR", ":7070")
	t.Setenv("HEARTCARE_AUTH_SESSION_TTL", "2h")
	t.Setenv("HEARTCARE_AUTH_DISABLED", "true")

	cfg, err := load(viper.New(), "heartcare", dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("env should override file: addr %q", cfg.Addr)
	}
	if cfg.Log.Format != "json" || cfg.Points.Initial != 300 || cfg.Points.SignIn != 8 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Points.DailyLog != 20 {
		t.Errorf("unset key lost its default: %d", cfg.Points.DailyLog)
	}
	if cfg.Auth.SessionTTL != 2*time.Hour || !cfg.Auth.Disabled {
		t.Errorf("auth %+v", cfg.Auth)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad level", map[string]string{"HEARTCARE_LOG_LEVEL": "loud"}},
		{"bad format", map[string]string{"HEARTCARE_LOG_FORMAT": "xml"}},
		{"negative reward", map[string]string{"HEARTCARE_POINTS_SURVEY": "-1"}},
		{"oidc without client", map[string]string{"HEARTCARE_OIDC_ISSUER": "https://id.example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := load(viper.New(), "heartcare", t.TempDir()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLogConfig_NewLogger(t *testing.T) {
	l := LogConfig{Level: "debug", Format: "json"}.NewLogger()
	if l.GetLevel() != logrus.DebugLevel {
		t.Errorf("level %v; want debug", l.GetLevel())
	}
	if _, ok := l.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter %T; want JSON", l.Formatter)
	}
}
