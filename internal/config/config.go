package config

import (
	"os"
	"strconv"
)

// Config is the process-wide configuration, loaded once at startup and
// passed by reference into the services that need it.
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string

	AdminUsername string
	AdminPassword string
	JWTSecret     string

	// Submissions allowed per client IP per minute.
	SubmitLimitPerMin int
}

func Load() *Config {
	return &Config{
		MongoURI:  getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:   getEnv("MONGO_DB", "redlight"),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		HTTPPort:  getEnv("PORT", "3000"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "integrity2025"),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-in-production"),

		SubmitLimitPerMin: getEnvInt("SUBMIT_LIMIT_PER_MIN", 30),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
