package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/attendance.db", cfg.Database.SQLitePath)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.Attendance.JobInterval)
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Empty(t, cfg.SMTP.Host, "mail is off unless configured")
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"postgres without password", map[string]string{"DB_DRIVER": "postgres", "DB_PASSWORD": ""}},
		{"missing jwt secret", map[string]string{"JWT_SECRET_KEY": ""}},
		{"bad port", map[string]string{"APP_PORT": "eighty"}},
		{"bad timezone", map[string]string{"ORG_TIMEZONE": "Mars/Olympus"}},
		{"zero interval", map[string]string{"ATTENDANCE_JOB_INTERVAL": "0s"}},
		{"zero concurrency", map[string]string{"ATTENDANCE_JOB_CONCURRENCY": "0"}},
		{"bad pool size", map[string]string{"DB_MAX_CONNS": "many"}},
		{"smtp without sender", map[string]string{"SMTP_HOST": "smtp.example.com", "SMTP_FROM": ""}},
		{"bad smtp port", map[string]string{"SMTP_PORT": "smtp"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DB_DRIVER", "sqlite")
			t.Setenv("JWT_SECRET_KEY", "secret")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		User: "hr", Password: "pw", Host: "db", Port: 5433, Name: "attendance", SSLMode: "require",
	}}
	assert.Equal(t, "postgres://hr:pw@db:5433/attendance?sslmode=require", cfg.DatabaseURL())
}
