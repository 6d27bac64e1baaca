package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SHIP_MANIFEST", "SHIP_INTERIOR", "SHIP_MODE", "SHIP_SEED", "SHIP_START_ROOM",
		"SHIP_ADVERSARY_ROOM", "SHIP_REQUIRED_ITEMS", "SHIP_GRACE_ROUNDS", "SHIP_PLAYER_NAME",
		"SHIP_ADVERSARY_NAME", "SHIP_TELEMETRY", "SHIP_LOCALE_DIR", "SHIP_LANG",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ModeProcedural, cfg.Ship.Mode)
	assert.Equal(t, 5, cfg.Ship.Interior)
	assert.Equal(t, 10, cfg.Game.RequiredItems)
	assert.Equal(t, 3, cfg.Game.GraceRounds)
	assert.Equal(t, "Escape Pods 2", cfg.Ship.AdversaryRoom)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SHIP_MANIFEST", "ships/freighter.yaml")
	t.Setenv("SHIP_INTERIOR", "7")
	t.Setenv("SHIP_MODE", "Static")
	t.Setenv("SHIP_SEED", "1234567890123")
	t.Setenv("SHIP_START_ROOM", "Cargo Hold")
	t.Setenv("SHIP_REQUIRED_ITEMS", "4")
	t.Setenv("SHIP_GRACE_ROUNDS", "0")
	t.Setenv("SHIP_TELEMETRY", "true")
	t.Setenv("SHIP_LANG", "de_DE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ships/freighter.yaml", cfg.Ship.ManifestPath)
	assert.Equal(t, 7, cfg.Ship.Interior)
	assert.Equal(t, ModeStatic, cfg.Ship.Mode)
	assert.Equal(t, int64(1234567890123), cfg.Ship.Seed)
	assert.Equal(t, "Cargo Hold", cfg.Ship.StartRoom)
	assert.Equal(t, 4, cfg.Game.RequiredItems)
	assert.Equal(t, 0, cfg.Game.GraceRounds)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "de_DE", cfg.Locale.Lang)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("SHIP_MODE", "")
	t.Setenv("SHIP_INTERIOR", "huge")
	t.Setenv("SHIP_SEED", "x")
	t.Setenv("SHIP_TELEMETRY", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultInterior, cfg.Ship.Interior)
	assert.Zero(t, cfg.Ship.Seed)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Ship.Mode = "random" }},
		{"no interior", func(c *Config) { c.Ship.Interior = 0 }},
		{"negative items", func(c *Config) { c.Game.RequiredItems = -1 }},
		{"negative grace", func(c *Config) { c.Game.GraceRounds = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}
