package config

import "os"

// Config holds server-level configuration
type Config struct {
	RedisAddr string
	HTTPPort  string
}

// Load reads server configuration from the environment
func Load() *Config {
	return &Config{
		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		HTTPPort:  getEnvOrDefault("PORT", "8080"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
