package service

import "time"

type Config struct {
	Token      string        `toml:"token"`
	Expiration string        `toml:"expiration"`
	BcryptCost int           `toml:"bcrypt_cost"`
	Storage    StorageConfig `toml:"db"`
}

type StorageConfig struct {
	Host     string        `toml:"host"`
	Port     int           `toml:"port"`
	DBName   string        `toml:"dbname"`
	Username string        `toml:"username"`
	Password string        `toml:"password"`
	SSL      bool          `toml:"ssl"`
	Timeout  time.Duration `toml:"timeout"`
}
