package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the whole application configuration, mapped from environment
// variables. A .env file is loaded first when present so local development
// works without exporting anything.
type Config struct {
	ListenAddr         string        `envconfig:"LISTEN_ADDR" default:":8080"`
	DBConnectionString string        `envconfig:"DB_CONNECTION_STRING"`
	JWTSecret          string        `envconfig:"JWT_SECRET"`
	SpotifyClientID    string        `envconfig:"SPOTIFY_CLIENT_ID"`
	SpotifySecret      string        `envconfig:"SPOTIFY_CLIENT_SECRET"`
	YouTubeAPIKey      string        `envconfig:"YOUTUBE_API_KEY"`
	ValuationCron      string        `envconfig:"VALUATION_CRON" default:"@every 6h"`
	ProviderTimeout    time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"10s"`
}

// Load maps environment variables onto a Config. A missing .env file is not
// an error, production environments set real environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
