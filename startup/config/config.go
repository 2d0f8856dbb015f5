package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	StayDBHost    string
	StayDBPort    string
	StayCacheHost string
	StayCachePort string
	JaegerAddress string
}

func NewConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          os.Getenv("STAYFINDER_SERVICE_PORT"),
		StayDBHost:    os.Getenv("STAY_DB_HOST"),
		StayDBPort:    os.Getenv("STAY_DB_PORT"),
		StayCacheHost: os.Getenv("STAY_CACHE_HOST"),
		StayCachePort: os.Getenv("STAY_CACHE_PORT"),
		JaegerAddress: os.Getenv("JAEGER_ADDRESS"),
	}
}
