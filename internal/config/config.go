// Package config reads server settings from the environment and blind
// structures from YAML files.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	Port        string
	CORSOrigins []string

	TickInterval time.Duration
	SnapshotTTL  time.Duration

	HostUsername string
	HostPassword string
	JWTSecret    string
	TokenTTL     time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "pokerclock"),
		RedisAddr:   strings.TrimPrefix(getEnv("REDIS_URI", "localhost:6379"), "redis://"),
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		TickInterval: getPositiveDuration("TICK_INTERVAL", 10*time.Millisecond),
		SnapshotTTL:  getPositiveDuration("SNAPSHOT_TTL", 24*time.Hour),

		HostUsername: getEnv("HOST_USERNAME", "admin"),
		HostPassword: getEnv("HOST_PASSWORD", "password123"),
		JWTSecret:    getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		TokenTTL:     getDuration("TOKEN_TTL", 0),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration accepts Go durations ("250ms") or a bare number of
// milliseconds.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	log.Printf("Warning: invalid %s %q, using %v", key, val, defaultVal)
	return defaultVal
}

// getPositiveDuration is getDuration for settings that must be above zero.
func getPositiveDuration(key string, defaultVal time.Duration) time.Duration {
	d := getDuration(key, defaultVal)
	if d <= 0 {
		log.Printf("Warning: %s must be positive, got %v, using %v", key, d, defaultVal)
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
