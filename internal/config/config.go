package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"financeserver/auth/service"
)

type Server struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Debug    bool   `toml:"debug_mode"`
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`
}

type Config struct {
	Server Server
	Auth   service.Config
}

func New() (Config, error) {
	var serverCfg Server
	_, err := toml.DecodeFile("configs/server.toml", &serverCfg)
	if err != nil {
		return Config{}, err
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %w", err)
		}
		serverCfg.Port = port
	}

	var authCfg service.Config
	_, err = toml.DecodeFile("configs/auth.toml", &authCfg)
	if err != nil {
		return Config{}, err
	}
	if v := os.Getenv("AUTH_TOKEN"); v != "" {
		authCfg.Token = v
	}
	if err := storageFromEnv(&authCfg.Storage); err != nil {
		return Config{}, err
	}

	return Config{
		Server: serverCfg,
		Auth:   authCfg,
	}, nil
}

func storageFromEnv(cfg *service.StorageConfig) error {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DBName = v
	}
	if v := os.Getenv("DB_SSL"); v != "" {
		ssl, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DB_SSL: %w", err)
		}
		cfg.SSL = ssl
	}
	return nil
}
