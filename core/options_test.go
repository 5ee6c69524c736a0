package core

import (
	"context"
	"testing"
)

func TestGoOptionsResolver_RuntimeWinsOverLoaded(t *testing.T) {
	resolver := GoOptionsResolver{}
	resolved, err := resolver.Resolve(
		DefaultConfig(),
		Config{MerchantID: "merchant.file", DisplayName: "File Store"},
		Config{MerchantID: "merchant.runtime"},
	)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.MerchantID != "merchant.runtime" {
		t.Fatalf("expected the runtime layer to win, got %q", resolved.MerchantID)
	}
	if resolved.DisplayName != "File Store" {
		t.Fatalf("expected the loaded layer to fill gaps, got %q", resolved.DisplayName)
	}
}

func TestGoOptionsResolver_DefaultsFillRemainingGaps(t *testing.T) {
	resolver := GoOptionsResolver{}
	resolved, err := resolver.Resolve(
		DefaultConfig(),
		Config{},
		Config{MerchantID: "merchant.runtime"},
	)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.DisplayName != "walletpay" {
		t.Fatalf("expected default display name, got %q", resolved.DisplayName)
	}
}

func TestGoOptionsResolver_RejectsMissingMerchant(t *testing.T) {
	resolver := GoOptionsResolver{}
	if _, err := resolver.Resolve(DefaultConfig(), Config{}, Config{}); err == nil {
		t.Fatalf("expected validation failure without a merchant id")
	}
}

func TestCfgxConfigProvider_AppliesRawValuesOverDefaults(t *testing.T) {
	provider := NewCfgxConfigProvider(staticRawConfigLoader{Values: map[string]any{
		"merchant_id": "merchant.file",
		"session": map[string]any{
			"stale_after_seconds": 300,
		},
	}})

	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MerchantID != "merchant.file" {
		t.Fatalf("expected raw merchant id, got %q", cfg.MerchantID)
	}
	if cfg.Session.StaleAfterSeconds != 300 {
		t.Fatalf("expected raw stale bound, got %d", cfg.Session.StaleAfterSeconds)
	}
	if cfg.DisplayName != "walletpay" {
		t.Fatalf("expected defaults preserved, got %q", cfg.DisplayName)
	}
}

func TestCfgxConfigProvider_LoadToleratesMissingMerchant(t *testing.T) {
	provider := NewCfgxConfigProvider(nil)
	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("load must defer merchant validation to the resolver, got %v", err)
	}
	if cfg.MerchantID != "" {
		t.Fatalf("expected empty merchant id from defaults, got %q", cfg.MerchantID)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{MerchantID: "merchant.test"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg.MerchantID = "   "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected blank merchant id to fail")
	}

	cfg.MerchantID = "merchant.test"
	cfg.Session.StaleAfterSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected negative stale bound to fail")
	}
}
