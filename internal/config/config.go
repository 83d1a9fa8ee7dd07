package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/hexapawn-backend/internal/search"
)

var ErrInvalidSearchDepth = errors.New("search depth must be positive")

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	Redis      Redis         `yaml:"redis"`
	Search     Search        `yaml:"search"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Search configures the computer player.
type Search struct {
	Depth     int    `yaml:"depth" env:"SEARCH_DEPTH" env-default:"4"`
	Evaluator string `yaml:"evaluator" env:"SEARCH_EVALUATOR" env-default:"material"`
	Trace     bool   `yaml:"trace" env:"SEARCH_TRACE" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Search.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Search) Validate() error {
	if that.Depth < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSearchDepth, that.Depth)
	}

	if _, err := search.EvaluatorByName(that.Evaluator); err != nil {
		return fmt.Errorf("invalid search config: %w", err)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
