package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("DB_DSN", "postgres://localhost/bookings")
	v.Set("SESSION_SECRET", "secret")
	v.Set("ADMIN_PASS", "pass")

	cfg, err := fromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Environment != "development" || cfg.HTTP.Port != 8080 || cfg.Admin.User != "admin" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Session.TTL != 30*24*time.Hour {
		t.Fatalf("unexpected session ttl %s", cfg.Session.TTL)
	}
	if len(cfg.Booking.ValidStatuses) != 4 {
		t.Fatalf("unexpected statuses %v", cfg.Booking.ValidStatuses)
	}
	if _, err := cfg.Location(); err != nil {
		t.Fatalf("default timezone must load: %v", err)
	}
	if cfg.HTTP.RateLimit != 60 {
		t.Fatalf("unexpected default rate limit %d", cfg.HTTP.RateLimit)
	}
}

func TestFromViper_RateLimit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"zero disables", "0", 0},
		{"explicit value", "120", 120},
		{"blank uses default", " ", 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set("DB_DSN", "postgres://localhost/bookings")
			v.Set("SESSION_SECRET", "secret")
			v.Set("ADMIN_PASS", "pass")
			v.Set("RATE_LIMIT_PER_MINUTE", tt.raw)

			cfg, err := fromViper(v)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.HTTP.RateLimit != tt.want {
				t.Fatalf("rate limit = %d, want %d", cfg.HTTP.RateLimit, tt.want)
			}
		})
	}
}

func TestFromViper_RequiredValues(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]string
	}{
		{"missing dsn", map[string]string{"SESSION_SECRET": "s", "ADMIN_PASS": "p"}},
		{"missing secret", map[string]string{"DB_DSN": "d", "ADMIN_PASS": "p"}},
		{"missing admin pass", map[string]string{"DB_DSN": "d", "SESSION_SECRET": "s"}},
		{"bad timezone", map[string]string{"DB_DSN": "d", "SESSION_SECRET": "s", "ADMIN_PASS": "p", "APP_TIMEZONE": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			if _, err := fromViper(v); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseList(t *testing.T) {
	got := parseList(" new, confirmed ,,done ")
	want := []string{"new", "confirmed", "done"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if parseList("  ") != nil {
		t.Fatalf("blank list must be nil")
	}
}
