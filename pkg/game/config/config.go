// Package config reads the ship and session settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Mode selects how the ship is laid out
type Mode string

// Layout modes
const (
	ModeStatic     Mode = "static"
	ModeProcedural Mode = "procedural"
)

// Config holds all configuration for a session
type Config struct {
	Ship      ShipConfig
	Game      GameConfig
	Telemetry TelemetryConfig
	Locale    LocaleConfig
}

// ShipConfig holds the layout settings
type ShipConfig struct {
	// ManifestPath is a CSV or YAML room list; empty uses the embedded one
	ManifestPath string
	Interior     int
	Mode         Mode
	// Seed drives every random choice; 0 picks a time-based seed
	Seed int64
	// StartRoom overrides the player's static start room
	StartRoom string
	// AdversaryRoom is the adversary's static start room
	AdversaryRoom string
}

// GameConfig holds the rules of a session
type GameConfig struct {
	RequiredItems int
	GraceRounds   int
	PlayerName    string
	AdversaryName string
}

// TelemetryConfig holds tracing settings
type TelemetryConfig struct {
	Enabled bool
}

// LocaleConfig holds translation settings
type LocaleConfig struct {
	Dir  string
	Lang string
}

// Defaults
const (
	DefaultInterior      = 5
	DefaultRequiredItems = 10
	DefaultGraceRounds   = 3
	DefaultAdversaryRoom = "Escape Pods 2"
	DefaultPlayerName    = "Tom"
	DefaultAdversaryName = "Pap-AI"
)

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Ship: ShipConfig{
			Interior:      DefaultInterior,
			Mode:          ModeProcedural,
			AdversaryRoom: DefaultAdversaryRoom,
		},
		Game: GameConfig{
			RequiredItems: DefaultRequiredItems,
			GraceRounds:   DefaultGraceRounds,
			PlayerName:    DefaultPlayerName,
			AdversaryName: DefaultAdversaryName,
		},
		Locale: LocaleConfig{
			Lang: "en_US",
		},
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	d := Default()
	cfg := &Config{
		Ship: ShipConfig{
			ManifestPath:  os.Getenv("SHIP_MANIFEST"),
			Interior:      getEnvAsIntOrDefault("SHIP_INTERIOR", d.Ship.Interior),
			Mode:          Mode(strings.ToLower(getEnvOrDefault("SHIP_MODE", string(d.Ship.Mode)))),
			Seed:          getEnvAsInt64OrDefault("SHIP_SEED", 0),
			StartRoom:     os.Getenv("SHIP_START_ROOM"),
			AdversaryRoom: getEnvOrDefault("SHIP_ADVERSARY_ROOM", d.Ship.AdversaryRoom),
		},
		Game: GameConfig{
			RequiredItems: getEnvAsIntOrDefault("SHIP_REQUIRED_ITEMS", d.Game.RequiredItems),
			GraceRounds:   getEnvAsIntOrDefault("SHIP_GRACE_ROUNDS", d.Game.GraceRounds),
			PlayerName:    getEnvOrDefault("SHIP_PLAYER_NAME", d.Game.PlayerName),
			AdversaryName: getEnvOrDefault("SHIP_ADVERSARY_NAME", d.Game.AdversaryName),
		},
		Telemetry: TelemetryConfig{
			Enabled: getEnvAsBoolOrDefault("SHIP_TELEMETRY", false),
		},
		Locale: LocaleConfig{
			Dir:  os.Getenv("SHIP_LOCALE_DIR"),
			Lang: getEnvOrDefault("SHIP_LANG", d.Locale.Lang),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings describe a playable session
func (c *Config) Validate() error {
	switch c.Ship.Mode {
	case ModeStatic, ModeProcedural:
	default:
		return fmt.Errorf("SHIP_MODE must be %q or %q, got %q", ModeStatic, ModeProcedural, c.Ship.Mode)
	}
	if c.Ship.Interior < 1 {
		return fmt.Errorf("SHIP_INTERIOR must be at least 1, got %d", c.Ship.Interior)
	}
	if c.Game.RequiredItems < 0 {
		return fmt.Errorf("SHIP_REQUIRED_ITEMS must not be negative, got %d", c.Game.RequiredItems)
	}
	if c.Game.GraceRounds < 0 {
		return fmt.Errorf("SHIP_GRACE_ROUNDS must not be negative, got %d", c.Game.GraceRounds)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
