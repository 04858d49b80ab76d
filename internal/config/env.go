package config

import (
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads environment variables from .env/.env.local files.
// The first file that parses wins; existing process environment variables are
// never overwritten. Absence of any .env file is normal.
func loadEnvFiles() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err == nil {
			return
		}
	}
}

// applyEnvOverrides applies PKGFORGE_* environment overrides on top of the
// file-sourced configuration.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PKGFORGE_LOCAL_PACKAGES_PATH"); v != "" {
		cfg.Packages.LocalPath = v
	}
	if v := os.Getenv("PKGFORGE_RELEASE_PACKAGES_PATH"); v != "" {
		cfg.Packages.ReleasePath = v
	}
	if v := os.Getenv("PKGFORGE_BUILD_COMMAND"); v != "" {
		cfg.Build.Command = v
	}
	if v := os.Getenv("PKGFORGE_NATS_URL"); v != "" {
		cfg.Hooks.NATS.URL = v
	}
}
