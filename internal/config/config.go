package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel        string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort        string `yaml:"http-port" env:"HTTP_PORT" env-default:""`
	PlayerMinLength int    `yaml:"player-min-length" env:"PLAYER_MIN_LENGTH" env-default:"2"`
	ComputerName    string `yaml:"computer-name" env:"COMPUTER_NAME" env-default:"Computer"`
	Redis           Redis  `yaml:"redis" env-prefix:"REDIS_"`
}

type Redis struct {
	Host    string `yaml:"host" env:"HOST" env-default:""`
	Port    string `yaml:"port" env:"PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"CHANNEL" env-default:"tictactoe:events"`
}

// MustLoad - load all configurations in config.yml file, falling back to the
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

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}

		return config, nil
	}

	if err = cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return config, nil
}

// Enabled reports whether an event publisher should be started.
func (that *Redis) Enabled() bool {
	return that.Host != ""
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
