package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Draw     DrawConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration.
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration.
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// DrawConfig holds session-wide draw behavior.
type DrawConfig struct {
	// Seed makes draws reproducible when non-zero; zero seeds from time.
	Seed int64
	// IncludeExcluded lifts the excluded-list gate for every draw.
	IncludeExcluded bool
	// ExcludedWinnersMin / ExcludedWinnersMax bound the cumulative number
	// of excluded-list winners across all prizes. -1 leaves an end open;
	// both -1 disables the constrained mode.
	ExcludedWinnersMin int
	ExcludedWinnersMax int
}

// Load loads configuration from a .env file, environment variables and an
// optional yaml config file in path.
func Load(path string) (*Config, error) {
	// A missing .env is fine; real deployments use environment variables.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "lucky-draw")
	viper.SetDefault("JWT.Secret", "change-me")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Draw.Seed", 0)
	viper.SetDefault("Draw.IncludeExcluded", false)
	viper.SetDefault("Draw.ExcludedWinnersMin", -1)
	viper.SetDefault("Draw.ExcludedWinnersMax", -1)
	viper.SetDefault("LogLevel", "info")
}

// ExcludedRange returns the configured bounds as optional ints, nil when the
// constrained mode is disabled.
func (c *DrawConfig) ExcludedRange() (min *int, max *int) {
	if c.ExcludedWinnersMin >= 0 {
		v := c.ExcludedWinnersMin
		min = &v
	}
	if c.ExcludedWinnersMax >= 0 {
		v := c.ExcludedWinnersMax
		max = &v
	}
	return min, max
}
