package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	HistoryRedis    = "redis"
	HistoryPostgres = "postgres"
)

type Config struct {
	LogLevel   string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string    `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis     `yaml:"redis" env-prefix:"REDIS_"`
	Postgres   Postgres  `yaml:"postgres" env-prefix:"POSTGRES_"`
	History    History   `yaml:"history" env-prefix:"HISTORY_"`
	Finalizer  Finalizer `yaml:"finalizer" env-prefix:"FINALIZER_"`
	Websocket  Websocket `yaml:"websocket" env-prefix:"WEBSOCKET_"`
}

type Redis struct {
	Host     string `yaml:"host" env:"HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"PORT" env-default:"6379"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB" env-default:"0"`
}

type Postgres struct {
	DSN string `yaml:"dsn" env:"DSN"`
}

type History struct {
	// Driver selects the match history store: redis or postgres.
	Driver string `yaml:"driver" env:"DRIVER" env-default:"redis"`
}

type Finalizer struct {
	Timeout    time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"5s"`
	MaxElapsed time.Duration `yaml:"max-elapsed" env:"MAX_ELAPSED" env-default:"30s"`
}

type Websocket struct {
	SendBuffer     int      `yaml:"send-buffer" env:"SEND_BUFFER" env-default:"64"`
	AllowedOrigins []string `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-separator:","`
}

// MustLoad - load all configurations in config.yml file, or from the
// environment when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}

		return config, config.validate()
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return config, config.validate()
}

func (that *Config) validate() error {
	switch that.History.Driver {
	case HistoryRedis:
		return nil
	case HistoryPostgres:
		if that.Postgres.DSN == "" {
			return errors.New("postgres.dsn is required for the postgres history driver")
		}
		return nil
	default:
		return fmt.Errorf("unknown history driver %q", that.History.Driver)
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
