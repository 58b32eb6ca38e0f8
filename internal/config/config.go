package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8086" validate:"min=1000,max=65535"`

	AnthropicApiKey  string `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseUrl string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com"`
	AnthropicModel   string `env:"ANTHROPIC_MODEL"    envDefault:"claude-sonnet-4-20250514"`

	GameDuration     time.Duration `env:"GAME_DURATION"      envDefault:"300s"`
	MaxActiveBugs    int           `env:"MAX_ACTIVE_BUGS"    envDefault:"2"   validate:"min=1"`
	MinSpawnInterval time.Duration `env:"MIN_SPAWN_INTERVAL" envDefault:"10s"`
	MaxSpawnInterval time.Duration `env:"MAX_SPAWN_INTERVAL" envDefault:"20s" validate:"gtefield=MinSpawnInterval"`
	BugTimeout       time.Duration `env:"BUG_TIMEOUT"        envDefault:"60s"`
	RevealStagger    time.Duration `env:"REVEAL_STAGGER"     envDefault:"2s"`

	RoomIdleTimeout time.Duration `env:"ROOM_IDLE_TIMEOUT" envDefault:"60s"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	// Parse config from environment variables
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	// Validate the config
	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
