package core

import (
	"fmt"
	"strings"
)

type SessionConfig struct {
	// StaleAfterSeconds bounds how long an unattended session may sit in
	// AwaitingSecret before AbandonStale will cancel it. Zero disables the
	// bound; the coordinator itself never schedules the sweep.
	StaleAfterSeconds int `koanf:"stale_after_seconds" mapstructure:"stale_after_seconds"`
}

type Config struct {
	// MerchantID is the wallet merchant identifier. It is required at
	// construction time, not per Start call.
	MerchantID  string        `koanf:"merchant_id" mapstructure:"merchant_id"`
	DisplayName string        `koanf:"display_name" mapstructure:"display_name"`
	Session     SessionConfig `koanf:"session" mapstructure:"session"`
}

func DefaultConfig() Config {
	return Config{
		DisplayName: "walletpay",
		Session:     SessionConfig{},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.MerchantID) == "" {
		return fmt.Errorf("core: merchant_id is required")
	}
	if c.Session.StaleAfterSeconds < 0 {
		return fmt.Errorf("core: session.stale_after_seconds must not be negative")
	}
	return nil
}
