package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNBuildsFromLegacyVars(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5432,
		LegacyUser:     "tesouraria",
		LegacyPassword: "s3cret",
		LegacyName:     "ledger",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	for _, part := range []string{"postgres://", "tesouraria:s3cret@", "db.internal:5432", "/ledger", "sslmode=require"} {
		if !strings.Contains(cfg.DSN, part) {
			t.Fatalf("DSN missing %q: %s", part, cfg.DSN)
		}
	}
}

func TestEnsureDSNKeepsExplicitDSN(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://explicit"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	if cfg.DSN != "postgres://explicit" {
		t.Fatalf("explicit DSN overwritten: %s", cfg.DSN)
	}
}

func TestEnsureDSNSkipsSQLite(t *testing.T) {
	cfg := DBConfig{Driver: "sqlite"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("sqlite must not require postgres vars: %v", err)
	}
}

func TestEnsureDSNReportsMissingVars(t *testing.T) {
	cfg := DBConfig{LegacyUser: "tesouraria"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), EnvDBHost) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error should name the missing vars: %v", err)
	}
}

func TestAppEnvHelpers(t *testing.T) {
	dev := AppConfig{Env: "DEV"}
	if !dev.IsDev() || dev.IsProd() {
		t.Fatalf("dev misclassified: %+v", dev)
	}
	prod := AppConfig{Env: AppEnvProd}
	if !prod.IsProd() || prod.IsDev() {
		t.Fatalf("prod misclassified: %+v", prod)
	}
}
