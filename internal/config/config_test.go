package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("VISIT_HOUR_RATE", "")
	t.Setenv("HALL_HOUR_RATE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if !cfg.Billing.VisitHourRate.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected visit rate: %s", cfg.Billing.VisitHourRate)
	}
	if !cfg.Billing.HallHourRate.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected hall rate: %s", cfg.Billing.HallHourRate)
	}
}

func TestLoadCustomRates(t *testing.T) {
	t.Setenv("VISIT_HOUR_RATE", "12.5")
	t.Setenv("HALL_HOUR_RATE", "75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if !cfg.Billing.VisitHourRate.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected visit rate: %s", cfg.Billing.VisitHourRate)
	}
	if !cfg.Billing.HallHourRate.Equal(decimal.NewFromInt(75)) {
		t.Fatalf("unexpected hall rate: %s", cfg.Billing.HallHourRate)
	}
}

func TestLoadRejectsBadRates(t *testing.T) {
	t.Setenv("VISIT_HOUR_RATE", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable rate")
	}

	t.Setenv("VISIT_HOUR_RATE", "-5")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative rate")
	}
}

func TestLoadServerAddrForms(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}

	t.Setenv("PORT", "90 00")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid PORT")
	}
}
