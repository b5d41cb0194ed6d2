package app

import (
	"learnhub_backend/internal/config"
	"testing"
)

func TestShouldMigrate(t *testing.T) {
	cases := []struct {
		name         string
		mode         string
		forceMigrate bool
		migrateOnly  bool
		want         bool
	}{
		{"debug mode migrates by default", "debug", false, false, true},
		{"release mode skips by default", "release", false, false, false},
		{"release mode with -migrate", "release", true, false, true},
		{"release mode with -migrate-only", "release", false, true, true},
		{"debug mode with -migrate", "debug", true, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.Mode = tc.mode
			cfg.ForceMigrate = tc.forceMigrate
			cfg.MigrateOnly = tc.migrateOnly
			if got := shouldMigrate(cfg); got != tc.want {
				t.Errorf("shouldMigrate(mode=%s force=%v only=%v) = %v, want %v",
					tc.mode, tc.forceMigrate, tc.migrateOnly, got, tc.want)
			}
		})
	}
}
